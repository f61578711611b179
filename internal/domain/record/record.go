package record

import "time"

// Record is a stored SGF document.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Level     int       `json:"level" bson:"level"`
	Sgf       string    `json:"sgf" bson:"sgf"`
	Games     int       `json:"games" bson:"games"`
	Nodes     int       `json:"nodes" bson:"nodes"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type RecordPage struct {
	PageNum    int      `json:"page_num" bson:"page_num"`
	TotalPages int      `json:"total_pages" bson:"total_pages"`
	Records    []Record `json:"records" bson:"records"`
}

// SourceFile is an SGF file found on disk by an import.
type SourceFile struct {
	Path  string
	Name  string
	Level int
	Text  string
}

type Summary struct {
	Games []GameSummary `json:"games"`
}

type GameSummary struct {
	Size        int    `json:"size"`
	Nodes       int    `json:"nodes"`
	Variations  int    `json:"variations"`
	Moves       int    `json:"main_line_moves"`
	PlayerBlack string `json:"player_black,omitempty"`
	PlayerWhite string `json:"player_white,omitempty"`
	Result      string `json:"result,omitempty"`
}

type Stone struct {
	Column int    `json:"column"`
	Row    int    `json:"row"`
	Point  string `json:"point"`
	Color  string `json:"color"`
}

// GobanView is the serializable board position of one node.
type GobanView struct {
	Game          int     `json:"game"`
	Path          []int   `json:"path"`
	Size          int     `json:"size"`
	MoveNumber    *int    `json:"move_number,omitempty"`
	CapturedBlack int     `json:"captured_black"`
	CapturedWhite int     `json:"captured_white"`
	Current       *Stone  `json:"current,omitempty"`
	Stones        []Stone `json:"stones"`
	Comment       string  `json:"comment,omitempty"`
	Children      int     `json:"children"`
}
