package model

// ScoreMetadata is catalog information looked up by filename from the
// metadata table; it is not part of the score tree itself.
type ScoreMetadata struct {
	Title    string
	Composer string
	Year     uint
}
