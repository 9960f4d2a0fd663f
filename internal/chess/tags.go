package chess

// Tag names the engine reads or writes itself.
const (
	EventTag       = "Event"
	SiteTag        = "Site"
	DateTag        = "Date"
	RoundTag       = "Round"
	WhiteTag       = "White"
	BlackTag       = "Black"
	ResultTag      = "Result"
	FENTag         = "FEN"
	SetupTag       = "SetUp"
	TerminationTag = "Termination"
	PlyCountTag    = "PlyCount"
)

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	EventTag,
	SiteTag,
	DateTag,
	RoundTag,
	WhiteTag,
	BlackTag,
	ResultTag,
}

// SevenTagDefaults are written for roster tags a game does not carry.
var SevenTagDefaults = map[string]string{
	EventTag:  "?",
	SiteTag:   "?",
	DateTag:   "????.??.??",
	RoundTag:  "?",
	WhiteTag:  "?",
	BlackTag:  "?",
	ResultTag: "*",
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}
