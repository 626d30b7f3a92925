package entities

import (
	"encoding/json"
	"time"
)

// Document is one uploaded file. The chunk sequence is serialized into Chunks
// at creation and never modified afterwards.
type Document struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Filename   string    `gorm:"not null" json:"filename"`
	UploadTime time.Time `gorm:"autoCreateTime" json:"upload_time"`
	Chunks     []byte    `gorm:"not null" json:"-"`
}

// Chunk is the unit of retrieval: a bounded segment of document text plus the
// page it was taken from.
type Chunk struct {
	Text string `json:"text"`
	Page int    `json:"page"`
}

func EncodeChunks(cs []Chunk) ([]byte, error) {
	return json.Marshal(cs)
}

func DecodeChunks(b []byte) ([]Chunk, error) {
	var cs []Chunk
	if err := json.Unmarshal(b, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}
