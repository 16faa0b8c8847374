// Package services holds the backend calls the pages make: the auth
// provider and one service per content collection.
//
// Every service is an interface with a private implementation and a
// New...Service constructor. Writes and admin reads take the signed-in user
// and refuse anyone who is not an admin.
package services

import (
	"fmt"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/ws"
)

// Collection names carried by content_update events.
const (
	CollectionRegistrations   = "registrations"
	CollectionGalleryImages   = "gallery_images"
	CollectionAchievements    = "achievements"
	CollectionContactInfo     = "contact_info"
	CollectionContactMessages = "contact_messages"
)

func requireAdmin(actor *models.User) error {
	if actor == nil {
		return fmt.Errorf("%w: sign in required", pkg.ErrUnauthorized)
	}
	if !actor.IsAdmin {
		return fmt.Errorf("%w: admin privileges required", pkg.ErrForbidden)
	}
	return nil
}

func badRequest(err error) error {
	return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
}

func publishContentUpdate(publisher ws.EventPublisher, collection string) {
	if publisher != nil {
		publisher.PublishContentUpdate(collection)
	}
}
