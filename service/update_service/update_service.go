package update_service

import (
	"errors"

	"expo-update-service/engine"
	"expo-update-service/storage"
)

// UpdateService resolves manifest requests for client devices.
type UpdateService struct {
	engine *engine.Engine
}

// NewUpdateService create an update service instance
func NewUpdateService(store storage.Storage, cfg engine.Config) *UpdateService {
	return &UpdateService{engine: engine.New(store, cfg)}
}

// Request negotiated inputs of one manifest request.
type Request struct {
	Channel          engine.Channel
	ProtocolVersion  int
	CurrentUpdateID  string
	EmbeddedUpdateID string
}

// Result the resolved outcome; exactly one of Manifest or Directive is
// set.
type Result struct {
	Manifest  *engine.Manifest
	Directive *engine.Directive
}

var (
	// ErrRollbackUnsupported rollBackToEmbedded cannot be delivered on
	// protocol version 0
	ErrRollbackUnsupported = errors.New("rollbacks not supported on protocol version 0")

	// ErrMissingEmbeddedUpdateID the client sent no embedded update id
	ErrMissingEmbeddedUpdateID = errors.New("invalid expo-embedded-update-id request header specified")
)

// SendUpdate resolves a request to a manifest or a directive.
func (s *UpdateService) SendUpdate(req Request) (*Result, error) {
	src, err := s.engine.ResolveServe(req.Channel)
	if err != nil {
		return nil, err
	}

	switch {
	case src.NoUpdate:
		return &Result{Directive: engine.NoUpdateAvailableDirective()}, nil

	case src.RollBackToEmbedded:
		if req.ProtocolVersion == 0 {
			return nil, ErrRollbackUnsupported
		}
		if req.EmbeddedUpdateID == "" {
			return nil, ErrMissingEmbeddedUpdateID
		}
		if req.CurrentUpdateID == req.EmbeddedUpdateID {
			// Already running the embedded update.
			return &Result{Directive: engine.NoUpdateAvailableDirective()}, nil
		}
		return &Result{Directive: engine.RollBackToEmbeddedDirective(src.CommitTime)}, nil

	default:
		meta, err := s.engine.ReadBundleMetadata(req.Channel, src.Bundle)
		if err != nil {
			return nil, err
		}
		// Suppress re-serving the update the client already runs. Only
		// the versioned protocol can encode the outcome.
		if req.ProtocolVersion == 1 && req.CurrentUpdateID == engine.ConvertSHA256HashToUUID(meta.ID) {
			return &Result{Directive: engine.NoUpdateAvailableDirective()}, nil
		}
		manifest, err := s.engine.BuildManifest(req.Channel, src.Bundle, meta)
		if err != nil {
			return nil, err
		}
		return &Result{Manifest: manifest}, nil
	}
}
