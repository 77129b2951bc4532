package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConceptMapping is one persisted row of a final mapping table: a dictionary
// entry together with its gold annotation and the concepts the pipeline
// assigned to it.
type ConceptMapping struct {
	ID             uuid.UUID
	SourceFile     string
	EntryID        string
	Lemma          string
	PartOfSpeech   string
	Definition     string
	GoldConcepts   []string
	MappedConcepts []string
	CreatedAt      time.Time
}
