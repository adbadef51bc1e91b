// Package access holds the closed role set and the single authorization
// decision used by every domain service.
package access

import (
	"strings"

	"talentnest/internal/pkg/apperr"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleArtisan Role = "artisan"
	RoleAdmin   Role = "admin"
)

var (
	ErrInvalidRole     = apperr.New(apperr.KindValidation, "INVALID_ROLE", "role must be one of: student, artisan")
	ErrForbidden       = apperr.New(apperr.KindAuthorization, "FORBIDDEN", "you are not allowed to perform this action")
	ErrUnauthenticated = apperr.New(apperr.KindUnauthenticated, "UNAUTHORIZED", "authentication required")
)

// ParseRole accepts any member of the closed role set.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStudent, RoleArtisan, RoleAdmin:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

// ParseSelfServiceRole accepts only roles a user may pick at registration.
func ParseSelfServiceRole(s string) (Role, error) {
	r, err := ParseRole(s)
	if err != nil || r == RoleAdmin {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string { return string(r) }

// Actor is the identity performing an operation.
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) Authenticated() bool { return a.UserID != 0 }
func (a Actor) IsAdmin() bool       { return a.Role == RoleAdmin }

type Action string

const (
	ActionServiceCreate      Action = "service:create"
	ActionServiceUpdate      Action = "service:update"
	ActionServiceSetStatus   Action = "service:set_status"
	ActionServiceViewHidden  Action = "service:view_hidden"
	ActionBookingCreate      Action = "booking:create"
	ActionBookingView        Action = "booking:view"
	ActionBookingTransition  Action = "booking:transition"
	ActionBookingContact     Action = "booking:contact"
	ActionContactLink        Action = "contact:link"
	ActionVerificationSubmit Action = "verification:submit"
	ActionVerificationView   Action = "verification:view"
	ActionVerificationReview Action = "verification:review"
	ActionAdminConsole       Action = "admin:console"
	ActionReviewCreate       Action = "review:create"
	ActionReviewRespond      Action = "review:respond"
	ActionUploadCreate       Action = "upload:create"
	ActionUploadDelete       Action = "upload:delete"
)

// Scope narrows a grant to resources the actor is related to.
type Scope int

const (
	ScopeAny Scope = iota
	ScopeOwner
	ScopeParticipant
)

// Resource describes what an action targets. Zero value means "no specific
// resource".
type Resource struct {
	OwnerID      int64
	Participants []int64
}

func Owned(ownerID int64) Resource { return Resource{OwnerID: ownerID} }

func Between(ids ...int64) Resource { return Resource{Participants: ids} }

var permissions = map[Role]map[Action]Scope{
	RoleAdmin: {
		ActionServiceSetStatus:   ScopeAny,
		ActionServiceViewHidden:  ScopeAny,
		ActionBookingView:        ScopeAny,
		ActionContactLink:        ScopeAny,
		ActionVerificationView:   ScopeAny,
		ActionVerificationReview: ScopeAny,
		ActionAdminConsole:       ScopeAny,
		ActionUploadCreate:       ScopeAny,
		ActionUploadDelete:       ScopeAny,
	},
	RoleArtisan: {
		ActionServiceCreate:      ScopeAny,
		ActionServiceUpdate:      ScopeOwner,
		ActionServiceViewHidden:  ScopeOwner,
		ActionBookingCreate:      ScopeAny,
		ActionBookingView:        ScopeParticipant,
		ActionBookingTransition:  ScopeParticipant,
		ActionBookingContact:     ScopeParticipant,
		ActionContactLink:        ScopeAny,
		ActionVerificationSubmit: ScopeAny,
		ActionVerificationView:   ScopeOwner,
		ActionReviewCreate:       ScopeParticipant,
		ActionReviewRespond:      ScopeOwner,
		ActionUploadCreate:       ScopeAny,
		ActionUploadDelete:       ScopeOwner,
	},
	RoleStudent: {
		ActionBookingCreate:     ScopeAny,
		ActionBookingView:       ScopeParticipant,
		ActionBookingTransition: ScopeParticipant,
		ActionBookingContact:    ScopeParticipant,
		ActionContactLink:       ScopeAny,
		ActionReviewCreate:      ScopeParticipant,
		ActionUploadCreate:      ScopeAny,
		ActionUploadDelete:      ScopeOwner,
	},
}

// Authorize returns nil when actor may perform action on res.
func Authorize(actor Actor, action Action, res Resource) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}

	scope, ok := permissions[actor.Role][action]
	if !ok {
		return ErrForbidden
	}

	switch scope {
	case ScopeOwner:
		if res.OwnerID != actor.UserID {
			return ErrForbidden
		}
	case ScopeParticipant:
		if !contains(res.Participants, actor.UserID) {
			return ErrForbidden
		}
	}
	return nil
}

// Can is Authorize as a boolean.
func Can(actor Actor, action Action, res Resource) bool {
	return Authorize(actor, action, res) == nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
