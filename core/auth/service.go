package auth

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zoptal/authkit/core/logger"
	"github.com/zoptal/authkit/core/password"
	"github.com/zoptal/authkit/core/session"
	"github.com/zoptal/authkit/core/token"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service orchestrates login, registration, logout, refresh, email
// verification, and password reset. It holds no state of its own beyond
// the login throttle; all session state lives in the session manager and
// all account state in the repository.
//
// Expected failures come back as *Error with a stable Code. Anything else
// is an internal fault, logged here with context and masked as
// CodeInternal.
type Service struct {
	users    Repository
	hasher   *password.Hasher
	policy   password.Config
	tokens   *token.Issuer
	sessions *session.Manager
	throttle *Throttle
	log      *slog.Logger
	cfg      Config
	now      func() time.Time
}

// NewService wires the authentication orchestrator.
func NewService(
	users Repository,
	tokens *token.Issuer,
	sessions *session.Manager,
	policy password.Config,
	cfg Config,
	log *slog.Logger,
	opts ...ServiceOption,
) *Service {
	cfg = cfg.defaults()
	if log == nil {
		log = slog.Default()
	}

	s := &Service{
		users:    users,
		hasher:   password.NewHasher(),
		policy:   policy,
		tokens:   tokens,
		sessions: sessions,
		throttle: NewThrottle(cfg.LoginBurst, cfg.LoginRefillInterval),
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// LoginParams carries a credential presentation with device context.
type LoginParams struct {
	Email      string
	Password   string
	IP         string
	UserAgent  string
	RememberMe bool
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User      PublicUser        `json:"user"`
	SessionID uuid.UUID         `json:"session_id"`
	Tokens    session.TokenPair `json:"tokens"`
}

// Login authenticates the credentials and establishes a session.
// The password check runs even when the user is unknown (against a dummy
// hash), keeping response times uniform across both outcomes.
func (s *Service) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	email := normalizeEmail(params.Email)
	if !emailPattern.MatchString(email) || params.Password == "" {
		return nil, NewError(CodeValidation, "email and password are required")
	}

	if !s.throttle.Allow(email + "|" + params.IP) {
		return nil, NewError(CodeRateLimited, "too many login attempts, try again later")
	}

	user, err := s.users.GetByEmail(ctx, email)
	targetHash := password.DummyHash()
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, s.internal(ctx, "login", err)
		}
		user = nil
	} else {
		targetHash = user.PasswordHash
	}

	if !s.hasher.Verify(params.Password, targetHash) || user == nil {
		if user != nil {
			user.RecordFailure(s.now(), s.cfg.MaxFailedAttempts, s.cfg.LockoutDuration)
			if err := s.users.Update(ctx, user); err != nil {
				s.log.WarnContext(ctx, "failed to record login failure",
					logger.Component("auth"), logger.UserID(user.ID), logger.Error(err))
			}
		}
		return nil, NewError(CodeInvalidCredentials, "invalid email or password")
	}

	// Lockout is checked after password verification to keep timing uniform.
	if user.IsLocked(s.now()) {
		return nil, NewError(CodeAccountLocked, "account is temporarily locked")
	}
	if user.Status == StatusSuspended {
		return nil, NewError(CodeAccountSuspended, "account is suspended")
	}
	if s.cfg.RequireVerifiedEmail && !user.EmailVerified {
		return nil, NewError(CodeEmailNotVerified, "email address is not verified")
	}

	user.RecordSuccess(s.now())
	if err := s.users.Update(ctx, user); err != nil {
		// Login proceeds; last-login bookkeeping is best effort.
		s.log.WarnContext(ctx, "failed to record login success",
			logger.Component("auth"), logger.UserID(user.ID), logger.Error(err))
	}

	sess, err := s.sessions.Create(ctx, user.sessionUser(), session.DeviceContext{
		IP:        params.IP,
		UserAgent: params.UserAgent,
	}, params.RememberMe)
	if err != nil {
		return nil, s.internal(ctx, "create session", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		logger.Component("auth"), logger.UserID(user.ID), logger.SessionID(sess.ID))

	return &LoginResult{
		User:      user.Public(),
		SessionID: sess.ID,
		Tokens:    sess.Pair(),
	}, nil
}

// RegisterParams carries a signup request.
type RegisterParams struct {
	Email    string
	Password string
}

// RegisterResult is returned on successful signup. VerificationToken is
// handed to an external delivery mechanism; this core does not send email.
type RegisterResult struct {
	User              PublicUser `json:"user"`
	VerificationToken string     `json:"-"`
}

// Register creates a pending account and issues an email verification token.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*RegisterResult, error) {
	email := normalizeEmail(params.Email)
	if !emailPattern.MatchString(email) {
		return nil, NewError(CodeValidation, "a valid email address is required")
	}

	if result := password.Validate(params.Password, s.policy); !result.Valid {
		return nil, NewError(CodeValidation, "password does not meet requirements", result.Errors...)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, NewError(CodeEmailAlreadyExists, "email is already registered")
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, s.internal(ctx, "register", err)
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, s.internal(ctx, "hash password", err)
	}

	now := s.now()
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		Role:         RoleMember,
		Status:       StatusPending,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, NewError(CodeEmailAlreadyExists, "email is already registered")
		}
		return nil, s.internal(ctx, "create user", err)
	}

	verification, err := s.tokens.IssuePurposeToken(user.ID, user.Email, token.PurposeEmailVerification, 0)
	if err != nil {
		return nil, s.internal(ctx, "issue verification token", err)
	}

	s.log.InfoContext(ctx, "user registered",
		logger.Component("auth"), logger.UserID(user.ID))

	return &RegisterResult{User: user.Public(), VerificationToken: verification}, nil
}

// VerifyEmail activates the account a verification token was issued for.
func (s *Service) VerifyEmail(ctx context.Context, tokenString string) (*PublicUser, error) {
	claims, ok := s.tokens.VerifyPurposeToken(tokenString, token.PurposeEmailVerification)
	if !ok {
		return nil, NewError(CodeTokenInvalid, "verification link is invalid or expired")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, NewError(CodeTokenInvalid, "verification link is invalid or expired")
		}
		return nil, s.internal(ctx, "verify email", err)
	}

	user.EmailVerified = true
	if user.Status == StatusPending {
		user.Status = StatusActive
	}
	user.UpdatedAt = s.now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, s.internal(ctx, "activate user", err)
	}

	public := user.Public()
	return &public, nil
}

// RefreshResult is returned on successful token rotation.
type RefreshResult struct {
	SessionID uuid.UUID         `json:"session_id"`
	Tokens    session.TokenPair `json:"tokens"`
}

// Refresh rotates the token pair for the session the refresh token names.
// A stale token version destroys the session and surfaces
// CodeTokenReuseDetected; an unknown session requires re-authentication.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	claims, ok := s.tokens.VerifyRefreshToken(refreshToken)
	if !ok {
		return nil, NewError(CodeTokenInvalid, "refresh token is invalid or expired")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, NewError(CodeUnauthorized, "re-authentication required")
		}
		return nil, s.internal(ctx, "refresh", err)
	}

	if user.Status == StatusSuspended {
		return nil, NewError(CodeAccountSuspended, "account is suspended")
	}

	sess, err := s.sessions.Refresh(ctx, user.sessionUser(), claims.SessionID, claims.TokenVersion)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrTokenReuseDetected):
			s.log.WarnContext(ctx, "refresh token reuse detected",
				logger.Component("auth"), logger.UserID(user.ID), logger.SessionID(claims.SessionID))
			return nil, NewError(CodeTokenReuseDetected, "refresh token was already used")
		case errors.Is(err, session.ErrNotFound):
			return nil, NewError(CodeUnauthorized, "re-authentication required")
		default:
			return nil, s.internal(ctx, "rotate session", err)
		}
	}

	return &RefreshResult{SessionID: sess.ID, Tokens: sess.Pair()}, nil
}

// Logout destroys the session. Destroying an already-absent session is
// not an error; logout is idempotent.
func (s *Service) Logout(ctx context.Context, sessionID uuid.UUID) error {
	s.sessions.Destroy(ctx, sessionID)
	return nil
}

// LogoutEverywhere destroys all of the user's sessions except the given
// one, returning the number destroyed.
func (s *Service) LogoutEverywhere(ctx context.Context, userID uuid.UUID, exceptSessionID uuid.UUID) (int, error) {
	var except []uuid.UUID
	if exceptSessionID != uuid.Nil {
		except = append(except, exceptSessionID)
	}

	count, err := s.sessions.DestroyAllForUser(ctx, userID, except...)
	if err != nil {
		return 0, s.internal(ctx, "logout everywhere", err)
	}
	return count, nil
}

// RequestPasswordReset issues a reset token for the account. The outcome
// is identical whether or not the email is registered, so the endpoint
// cannot be used for account enumeration. The token is handed to an
// external delivery mechanism.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (resetToken string, err error) {
	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return "", NewError(CodeValidation, "a valid email address is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil
		}
		return "", s.internal(ctx, "request password reset", err)
	}

	reset, err := s.tokens.IssuePurposeToken(user.ID, user.Email, token.PurposePasswordReset, 0)
	if err != nil {
		return "", s.internal(ctx, "issue reset token", err)
	}
	return reset, nil
}

// ResetPassword sets a new password from a reset token and logs the user
// out everywhere: any session established before the reset is suspect.
func (s *Service) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	claims, ok := s.tokens.VerifyPurposeToken(tokenString, token.PurposePasswordReset)
	if !ok {
		return NewError(CodeTokenInvalid, "reset link is invalid or expired")
	}

	if result := password.Validate(newPassword, s.policy); !result.Valid {
		return NewError(CodeValidation, "password does not meet requirements", result.Errors...)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return NewError(CodeTokenInvalid, "reset link is invalid or expired")
		}
		return s.internal(ctx, "reset password", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return s.internal(ctx, "hash password", err)
	}

	now := s.now()
	user.PasswordHash = hash
	user.FailedAttempts = 0
	user.LockedUntil = nil
	user.UpdatedAt = now

	if err := s.users.Update(ctx, user); err != nil {
		return s.internal(ctx, "update password", err)
	}

	if _, err := s.sessions.DestroyAllForUser(ctx, user.ID); err != nil {
		return s.internal(ctx, "destroy sessions after reset", err)
	}

	s.log.InfoContext(ctx, "password reset completed",
		logger.Component("auth"), logger.UserID(user.ID))

	return nil
}

// internal logs an unexpected fault with context and returns the generic
// internal error clients see.
func (s *Service) internal(ctx context.Context, operation string, err error) error {
	s.log.ErrorContext(ctx, "auth operation failed",
		logger.Component("auth"), logger.Event(operation), logger.Error(err))
	return NewError(CodeInternal, "something went wrong")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
