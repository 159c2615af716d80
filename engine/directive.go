package engine

import "time"

// DirectiveType tag of a non-manifest instruction sent to the client.
type DirectiveType string

const (
	DirectiveNoUpdateAvailable  DirectiveType = "noUpdateAvailable"
	DirectiveRollBackToEmbedded DirectiveType = "rollBackToEmbedded"
)

// Directive a non-manifest resolution outcome. Constructed fresh per
// request.
type Directive struct {
	Type       DirectiveType        `json:"type"`
	Parameters *DirectiveParameters `json:"parameters,omitempty"`
}

// DirectiveParameters payload of a rollBackToEmbedded directive.
type DirectiveParameters struct {
	CommitTime string `json:"commitTime"`
}

// NoUpdateAvailableDirective build a noUpdateAvailable directive
func NoUpdateAvailableDirective() *Directive {
	return &Directive{Type: DirectiveNoUpdateAvailable}
}

// RollBackToEmbeddedDirective build a rollBackToEmbedded directive
func RollBackToEmbeddedDirective(commitTime time.Time) *Directive {
	return &Directive{
		Type: DirectiveRollBackToEmbedded,
		Parameters: &DirectiveParameters{
			CommitTime: commitTime.UTC().Format(isoTimeLayout),
		},
	}
}
