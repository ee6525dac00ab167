package services

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/rs/zerolog"
	authz "github.com/yigit/clubsphere/internal/app/auth"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/auth"
	"github.com/yigit/clubsphere/internal/pkg/filestorage"
	"github.com/yigit/clubsphere/internal/pkg/realtime"
)

// DefaultFeedSize is how many notifications a listing returns when no size is given
const DefaultFeedSize = 20

// Dependencies are the collaborators every service is built from
type Dependencies struct {
	Repos      *repositories.Repositories
	JWT        *auth.JWTService
	Storage    filestorage.ObjectStore
	Broker     realtime.Broker
	OAuth      map[string]OAuthProviderConfig
	FeedSize   int
	SessionTTL time.Duration
	Logger     zerolog.Logger
}

// Services is the complete service layer
type Services struct {
	Authz         *authz.AuthorizationService
	Auth          *AuthService
	OAuth         *OAuthService
	Profiles      ProfileService
	Clubs         ClubService
	Members       MembershipService
	Events        EventService
	Admin         AdminService
	Notifications NotificationService
	Dashboards    DashboardService
}

// NewServices wires the service layer
func NewServices(deps Dependencies) *Services {
	if deps.FeedSize <= 0 {
		deps.FeedSize = DefaultFeedSize
	}
	if deps.Broker == nil {
		deps.Broker = realtime.NewLocalBroker()
	}
	repos := deps.Repos
	log := deps.Logger

	policy := authz.NewAuthorizationService(repos)
	notifications := NewNotificationService(repos.Notifications, deps.Broker, deps.FeedSize, log.With().Str("service", "notifications").Logger())
	authService := NewAuthService(repos, deps.JWT, deps.SessionTTL, log.With().Str("service", "auth").Logger())

	return &Services{
		Authz:         policy,
		Auth:          authService,
		OAuth:         NewOAuthService(authService, deps.OAuth, log.With().Str("service", "oauth").Logger()),
		Profiles:      NewProfileService(repos.Profiles, deps.Storage, log.With().Str("service", "profiles").Logger()),
		Clubs:         NewClubService(repos, policy, deps.Storage, log.With().Str("service", "clubs").Logger()),
		Members:       NewMembershipService(repos, policy, notifications, log.With().Str("service", "members").Logger()),
		Events:        NewEventService(repos, policy, log.With().Str("service", "events").Logger()),
		Admin:         NewAdminService(repos, policy, notifications, log.With().Str("service", "admin").Logger()),
		Notifications: notifications,
		Dashboards:    NewDashboardService(repos, log.With().Str("service", "dashboards").Logger()),
	}
}

type validatable interface {
	Validate() error
}

// validateRequest runs the request's own rules and converts a failure into a
// ValidationError carrying the per-field messages.
func validateRequest(req validatable) error {
	err := req.Validate()
	if err == nil {
		return nil
	}

	ce := apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error())
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]interface{}, len(fieldErrs))
		for field, fe := range fieldErrs {
			details[field] = fe.Error()
		}
		ce.WithDetails(details)
	}
	return ce
}

// storeError wraps anything that is not already classified as an upstream failure
func storeError(message string, err error) error {
	if apperrors.Is(err, apperrors.ErrUpstreamUnavailable, apperrors.ErrResourceNotFound,
		apperrors.ErrConflict, apperrors.ErrValidationFailed, apperrors.ErrPermissionDenied) {
		return err
	}
	return apperrors.NewUpstreamError(message, err)
}
