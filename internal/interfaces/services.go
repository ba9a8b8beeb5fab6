package interfaces

import (
	"alicia-launcher/internal/domain"
)

// WebInfoPublisher defines the interface for hosting the web info record
type WebInfoPublisher interface {
	Publish(id string, info domain.WebInfo) error
	Release()
	ID() string
}
