package policy

import (
	"stayspot/pkg/models"
)

// ImageParent is the resolved parent of a polymorphic image: exactly one of
// Spot or Review is set, matching Type. It is resolved once per request and
// passed explicitly to both the authorization guard and the attach policy.
type ImageParent struct {
	Type   string
	Spot   *models.Spot
	Review *models.Review
}

func SpotParent(spot *models.Spot) ImageParent {
	return ImageParent{Type: models.ImageableSpot, Spot: spot}
}

func ReviewParent(review *models.Review) ImageParent {
	return ImageParent{Type: models.ImageableReview, Review: review}
}

func (p ImageParent) ID() uint {
	if p.Type == models.ImageableSpot {
		return p.Spot.ID
	}
	return p.Review.ID
}

// ownerID is the user allowed to mutate the parent: the spot's owner or the
// review's author.
func (p ImageParent) ownerID() uint {
	if p.Type == models.ImageableSpot {
		return p.Spot.OwnerID
	}
	return p.Review.UserID
}

// The guard below is pure: resources are already loaded and confirmed to
// exist, the actor is already authenticated. Each predicate answers
// allow/deny and nothing else.

func AuthorizeSpot(actorID uint, spot *models.Spot) *Error {
	if spot.OwnerID != actorID {
		return Forbidden("Spot")
	}
	return nil
}

func AuthorizeReview(actorID uint, review *models.Review) *Error {
	if review.UserID != actorID {
		return Forbidden("Review")
	}
	return nil
}

func AuthorizeBooking(actorID uint, booking *models.Booking) *Error {
	if booking.UserID != actorID {
		return Forbidden("Booking")
	}
	return nil
}

func AuthorizeImage(actorID uint, parent ImageParent) *Error {
	if parent.ownerID() != actorID {
		return Forbidden(parent.Type)
	}
	return nil
}
