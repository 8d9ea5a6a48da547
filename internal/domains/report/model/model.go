package model

import (
	"medsched/shared/model"
)

const (
	EntityName = "report"
)

// Format selects a report renderer.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

type Report struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Format  Format `json:"format"`
	Content string `json:"content"`
	model.Metadata
}

func (r Report) StorageID() string {
	return r.ID
}

func (r Report) EntityName() string {
	return EntityName
}
