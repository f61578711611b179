package sgf

// PropertyClass groups standard properties by the kind of node they belong to.
// See https://www.red-bean.com/sgf/sgf4.html#2.2.1
type PropertyClass int

const (
	// ClassMove properties describe the move of a node. They must not be
	// mixed with setup properties.
	ClassMove PropertyClass = iota
	// ClassSetup properties describe the current position.
	ClassSetup
	// ClassRoot properties are only allowed in the root node of a game tree.
	ClassRoot
	// ClassGameInfo properties are allowed once per variation.
	ClassGameInfo
	ClassOther
)

func (c PropertyClass) String() string {
	switch c {
	case ClassMove:
		return "move"
	case ClassSetup:
		return "setup"
	case ClassRoot:
		return "root"
	case ClassGameInfo:
		return "game-info"
	default:
		return "other"
	}
}

// StandardKey is one of the SGF FF[4] reserved property identifiers.
type StandardKey int

const (
	AddBlack StandardKey = iota
	AddEmpty
	Annotation
	Application
	Arrow
	WhoAddsStones
	AddWhite
	BlackMove
	BlackTimeLeft
	BadMove
	BlackRank
	BlackTeam
	Comment
	Charset
	Copyright
	Circle
	DimPoints
	EvenPosition
	Doubtful
	Date
	Event
	FileFormat
	Figure
	GoodForBlack
	GameComment
	GameMode
	GameName
	GoodForWhite
	Handicap
	Hotspot
	InitialPosition
	Interesting
	InvertYAxis
	Komi
	Ko
	Label
	Line
	MarkX
	MoveNumber
	NodeName
	BlackMovesLeft
	Opening
	Overtime
	WhiteMovesLeft
	PlayerBlack
	Place
	PlayerToPlay
	PrintMoveMode
	PlayerWhite
	Result
	Round
	Rules
	LegalMoves
	Selected
	Source
	Square
	Style
	SetupType
	Size
	TerritoryBlack
	Tesuji
	TimeLimit
	Triangle
	TerritoryWhite
	UnclearPosition
	User
	Value
	View
	WhiteMove
	WhiteTimeLeft
	WhiteRank
	WhiteTeam
)

type keyInfo struct {
	ident       string
	class       PropertyClass
	description string
}

// https://www.red-bean.com/sgf/proplist.html
var standardKeys = [...]keyInfo{
	AddBlack:        {"AB", ClassSetup, "Add Black"},
	AddEmpty:        {"AE", ClassSetup, "Add Empty (remove)"},
	Annotation:      {"AN", ClassGameInfo, "Annotation"},
	Application:     {"AP", ClassRoot, "Application"},
	Arrow:           {"AR", ClassOther, "Arrow markup"},
	WhoAddsStones:   {"AS", ClassOther, "Who adds stones"},
	AddWhite:        {"AW", ClassSetup, "Add White"},
	BlackMove:       {"B", ClassMove, "Black move"},
	BlackTimeLeft:   {"BL", ClassMove, "Black time left"},
	BadMove:         {"BM", ClassMove, "Bad move"},
	BlackRank:       {"BR", ClassGameInfo, "Black rank"},
	BlackTeam:       {"BT", ClassGameInfo, "Black team"},
	Comment:         {"C", ClassOther, "Comment"},
	Charset:         {"CA", ClassRoot, "Charset"},
	Copyright:       {"CP", ClassOther, "Copyright"},
	Circle:          {"CR", ClassOther, "Circle markup"},
	DimPoints:       {"DD", ClassOther, "Dim points markup"},
	EvenPosition:    {"DM", ClassOther, "Even position"},
	Doubtful:        {"DO", ClassMove, "Doubtful"},
	Date:            {"DT", ClassGameInfo, "Date"},
	Event:           {"EV", ClassGameInfo, "Event"},
	FileFormat:      {"FF", ClassRoot, "File format"},
	Figure:          {"FG", ClassOther, "Figure"},
	GoodForBlack:    {"GB", ClassOther, "Good for Black"},
	GameComment:     {"GC", ClassGameInfo, "Game comment"},
	GameMode:        {"GM", ClassRoot, "Game (Go = 1, Othello = 2, Chess = 3...)"},
	GameName:        {"GN", ClassGameInfo, "Game name"},
	GoodForWhite:    {"GW", ClassOther, "Good for White"},
	Handicap:        {"HA", ClassGameInfo, "Handicap (Go)"},
	Hotspot:         {"HO", ClassOther, "Hotspot"},
	InitialPosition: {"IP", ClassGameInfo, "Initial position (Lines of Action)"},
	Interesting:     {"IT", ClassMove, "Interesting"},
	InvertYAxis:     {"IY", ClassGameInfo, "Invert Y axis (Lines of Action)"},
	Komi:            {"KM", ClassGameInfo, "Komi (Go)"},
	Ko:              {"KO", ClassMove, "Ko"},
	Label:           {"LB", ClassOther, "Label"},
	Line:            {"LN", ClassOther, "Line"},
	MarkX:           {"MA", ClassOther, "X markup"},
	MoveNumber:      {"MN", ClassMove, "Move number"},
	NodeName:        {"N", ClassOther, "Node name"},
	BlackMovesLeft:  {"OB", ClassOther, "Number of Black moves left (Canadian byo-yomi)"},
	Opening:         {"ON", ClassOther, "Opening"},
	Overtime:        {"OT", ClassOther, "Overtime"},
	WhiteMovesLeft:  {"OW", ClassOther, "Number of White moves left (Canadian byo-yomi)"},
	PlayerBlack:     {"PB", ClassGameInfo, "Player Black"},
	Place:           {"PC", ClassGameInfo, "Place"},
	PlayerToPlay:    {"PL", ClassSetup, "Player to play"},
	PrintMoveMode:   {"PM", ClassOther, "Print move mode"},
	PlayerWhite:     {"PW", ClassGameInfo, "Player White"},
	Result:          {"RE", ClassGameInfo, "Result"},
	Round:           {"RO", ClassGameInfo, "Round"},
	Rules:           {"RU", ClassGameInfo, "Rules"},
	LegalMoves:      {"SE", ClassOther, "Legal moves markup (Lines of Action)"},
	Selected:        {"SL", ClassOther, "Selected"},
	Source:          {"SO", ClassGameInfo, "Source"},
	Square:          {"SQ", ClassOther, "Square markup"},
	Style:           {"ST", ClassRoot, "Style"},
	SetupType:       {"SU", ClassGameInfo, "Setup type (Lines of Action)"},
	Size:            {"SZ", ClassRoot, "Size"},
	TerritoryBlack:  {"TB", ClassOther, "Territory Black (Go)"},
	Tesuji:          {"TE", ClassMove, "Tesuji"},
	TimeLimit:       {"TM", ClassGameInfo, "Time limit"},
	Triangle:        {"TR", ClassOther, "Triangle markup"},
	TerritoryWhite:  {"TW", ClassOther, "Territory White (Go)"},
	UnclearPosition: {"UC", ClassOther, "Unclear position"},
	User:            {"US", ClassGameInfo, "User"},
	Value:           {"V", ClassOther, "Value of the move"},
	View:            {"VW", ClassOther, "View (restrict display)"},
	WhiteMove:       {"W", ClassMove, "White move"},
	WhiteTimeLeft:   {"WL", ClassMove, "White time left"},
	WhiteRank:       {"WR", ClassGameInfo, "White rank"},
	WhiteTeam:       {"WT", ClassGameInfo, "White team"},
}

func (k StandardKey) String() string { return standardKeys[k].ident }
func (k StandardKey) Class() PropertyClass { return standardKeys[k].class }
func (k StandardKey) Description() string { return standardKeys[k].description }
func (k StandardKey) valid() bool { return k >= 0 && int(k) < len(standardKeys) }
func (k StandardKey) Key() PropertyKey { return PropertyKey{kind: KindStandard, standard: k} }
func (k StandardKey) Property(v ...string) Property {
	return Property{Key: k.Key(), Values: v}
}

// CommonKey is a non-standard property frequently found in Go SGF files.
type CommonKey int

const (
	BlackCountry CommonKey = iota
	BlackPlayers
	BlackSpecies
	CheckMarkup
	Difficulty
	ExtendedDate
	CapturedMarkup
	EventExtended
	ProblemType
	GameIdentifier
	JapaneseDate
	KGSDeadStones
	KGSWhiteScore
	KGSBlackScore
	IntegerKomi
	PointList
	ByoYomiPeriods
	ByoYomiLength
	LeelaZeroComment
	Mark
	MultigoGM
	MultigoBM
	OldHandicap
	CanadianMoves
	PlayerBlackExtended
	PeopleInvolved
	SigmaMarkup
	EditorSystem
	TimeUsed
	TerritoryCount
	TournamentIndex
	WhiteCountry
	WhitePlayers
	WhiteSpecies
	GoWriteVersion
	GoWriteExtension
	Explanation
)

var commonKeys = [...]keyInfo{
	BlackCountry:        {"BC", ClassOther, "Black country"},
	BlackPlayers:        {"BP", ClassOther, "Black players (multiplayer go)"},
	BlackSpecies:        {"BS", ClassOther, "Black species"},
	CheckMarkup:         {"CH", ClassOther, "Check markup"},
	Difficulty:          {"DI", ClassOther, "Difficulty (tsumego)"},
	ExtendedDate:        {"DTX", ClassOther, "Extended date"},
	CapturedMarkup:      {"E", ClassOther, "Stones captured by the previous move markup"},
	EventExtended:       {"EVX", ClassOther, "Event extended info"},
	ProblemType:         {"GE", ClassOther, "Problem type (tsumego)"},
	GameIdentifier:      {"ID", ClassOther, "Game identifier"},
	JapaneseDate:        {"JD", ClassOther, "Japanese date"},
	KGSDeadStones:       {"KGSDE", ClassOther, "KGS dead stones"},
	KGSWhiteScore:       {"KGSSW", ClassOther, "KGS white score"},
	KGSBlackScore:       {"KGSSB", ClassOther, "KGS black score"},
	IntegerKomi:         {"KI", ClassOther, "Integer komi"},
	PointList:           {"L", ClassOther, "List of points, replaced by LB"},
	ByoYomiPeriods:      {"LC", ClassOther, "Number of byo-yomi periods"},
	ByoYomiLength:       {"LT", ClassOther, "Length of byo-yomi periods"},
	LeelaZeroComment:    {"LZ", ClassOther, "Leela Zero comment"},
	Mark:                {"M", ClassOther, "Mark"},
	MultigoGM:           {"MULTIGOGM", ClassOther, "Multigo specific property"},
	MultigoBM:           {"MULTIGOBM", ClassOther, "Multigo specific property"},
	OldHandicap:         {"OH", ClassOther, "Old handicap"},
	CanadianMoves:       {"OM", ClassOther, "Number of moves per Canadian byo-yomi period"},
	PlayerBlackExtended: {"PBX", ClassOther, "Player Black extended information"},
	PeopleInvolved:      {"PI", ClassOther, "People involved (multiplayer go)"},
	SigmaMarkup:         {"SI", ClassOther, "Sigma markup"},
	EditorSystem:        {"SY", ClassOther, "System, Go editor version"},
	TimeUsed:            {"T", ClassOther, "Time used for the move"},
	TerritoryCount:      {"TC", ClassOther, "Territory count"},
	TournamentIndex:     {"TI", ClassOther, "Tournament index"},
	WhiteCountry:        {"WC", ClassOther, "White country"},
	WhitePlayers:        {"WP", ClassOther, "White players (multiplayer go)"},
	WhiteSpecies:        {"WS", ClassOther, "White species"},
	GoWriteVersion:      {"WV", ClassOther, "GoWrite version"},
	GoWriteExtension:    {"WX", ClassOther, "GoWrite extension"},
	Explanation:         {"ZZ", ClassOther, "Explanation (in chinese) of the following property"},
}

func (k CommonKey) String() string { return commonKeys[k].ident }
func (k CommonKey) Description() string { return commonKeys[k].description }
func (k CommonKey) Key() PropertyKey { return PropertyKey{kind: KindCommon, common: k} }

// KeyKind tells which variant of PropertyKey is populated.
type KeyKind int

const (
	KindStandard KeyKind = iota
	KindCommon
	KindCustom
)

// PropertyKey is a tagged union over standard, common and custom keys.
type PropertyKey struct {
	kind     KeyKind
	standard StandardKey
	common   CommonKey
	custom   string
}

var (
	standardByIdent = make(map[string]StandardKey, len(standardKeys))
	commonByIdent   = make(map[string]CommonKey, len(commonKeys))
)

func init() {
	for i, info := range standardKeys {
		standardByIdent[info.ident] = StandardKey(i)
	}
	for i, info := range commonKeys {
		commonByIdent[info.ident] = CommonKey(i)
	}
}

// ParseKey resolves an identifier, preferring standard keys over common ones.
func ParseKey(ident string) PropertyKey {
	if k, ok := standardByIdent[ident]; ok {
		return k.Key()
	}
	if k, ok := commonByIdent[ident]; ok {
		return k.Key()
	}
	return CustomKey(ident)
}

func CustomKey(ident string) PropertyKey {
	return PropertyKey{kind: KindCustom, custom: ident}
}

func (k PropertyKey) Kind() KeyKind { return k.kind }

func (k PropertyKey) Standard() (StandardKey, bool) {
	return k.standard, k.kind == KindStandard
}

func (k PropertyKey) Common() (CommonKey, bool) {
	return k.common, k.kind == KindCommon
}

func (k PropertyKey) Is(s StandardKey) bool {
	return k.kind == KindStandard && k.standard == s
}

// Class is ClassOther for every non-standard key.
func (k PropertyKey) Class() PropertyClass {
	if k.kind == KindStandard && k.standard.valid() {
		return k.standard.Class()
	}
	return ClassOther
}

func (k PropertyKey) Description() string {
	switch k.kind {
	case KindStandard:
		return k.standard.Description()
	case KindCommon:
		return k.common.Description()
	}
	return ""
}

func (k PropertyKey) String() string {
	switch k.kind {
	case KindStandard:
		return k.standard.String()
	case KindCommon:
		return k.common.String()
	}
	return k.custom
}
