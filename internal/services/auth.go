package services

import (
  "context"
  "errors"
  "fmt"
  "strconv"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "golang.org/x/crypto/bcrypt"

  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/repos"
  "github.com/asthmaai/asthmaai-backend/internal/requestdata"
  "github.com/asthmaai/asthmaai-backend/internal/sessions"
  "github.com/asthmaai/asthmaai-backend/internal/types"
  "github.com/asthmaai/asthmaai-backend/internal/utils"
)

type AuthService interface {
  Register(ctx context.Context, username, password string) (*types.User, string, error)
  Login(ctx context.Context, username, password string) (*types.User, string, error)
  Logout(ctx context.Context) error
  Authenticate(ctx context.Context, username, password string) (*types.User, error)
  CurrentUser(ctx context.Context) (*types.User, error)

  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)

  GetSessionTTL() time.Duration
}

type AuthConfig struct {
  JWTSecretKey    string
  SessionTTL      time.Duration
  BcryptCost      int
}

type authService struct {
  log               *logger.Logger
  store             repos.RecordStore
  sessions          sessions.SessionStore
  jwtSecretKey      []byte
  sessionTTL        time.Duration
  bcryptCost        int
}

func NewAuthService(log *logger.Logger, store repos.RecordStore, sessionStore sessions.SessionStore, cfg AuthConfig) AuthService {
  serviceLog := log.With("service", "AuthService")
  cost := cfg.BcryptCost
  if cost == 0 {
    cost = bcrypt.DefaultCost
  }
  return &authService{
    log:          serviceLog,
    store:        store,
    sessions:     sessionStore,
    jwtSecretKey: []byte(cfg.JWTSecretKey),
    sessionTTL:   cfg.SessionTTL,
    bcryptCost:   cost,
  }
}

func (as *authService) Register(ctx context.Context, username, password string) (*types.User, string, error) {
  as.log.Info("Starting Register User now...")
  //1) Normalize and validate
  username = utils.NormalizeUsername(username)
  if err := utils.ValidateRegistrationInput(username, password, as.log); err != nil {
    return nil, "", fmt.Errorf("%v: %w", err, ErrInvalidInput)
  }

  //2) Uniqueness, the store enforces it again on create
  existing, err := as.store.GetUserByUsername(ctx, username)
  if err != nil {
    return nil, "", fmt.Errorf("failed checking username: %w", err)
  }
  if existing != nil {
    as.log.Warn("Username already exists, cannot register", "username", username)
    return nil, "", repos.ErrUsernameTaken
  }

  //3) Hash Password
  hashed, err := bcrypt.GenerateFromPassword([]byte(password), as.bcryptCost)
  if err != nil {
    as.log.Warn("Failure to hash password for user", "error", err)
    return nil, "", fmt.Errorf("failed to hash password: %w", err)
  }

  //4) Create user and open a session
  user, err := as.store.CreateUser(ctx, username, string(hashed))
  if err != nil {
    return nil, "", err
  }
  token, err := as.openSession(ctx, user)
  if err != nil {
    return nil, "", err
  }
  as.log.Info("Registered user", "userID", user.ID)
  return user, token, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (*types.User, string, error) {
  user, err := as.Authenticate(ctx, username, password)
  if err != nil {
    return nil, "", err
  }
  token, err := as.openSession(ctx, user)
  if err != nil {
    return nil, "", err
  }
  as.log.Info("User logged in", "userID", user.ID)
  return user, token, nil
}

func (as *authService) Authenticate(ctx context.Context, username, password string) (*types.User, error) {
  username = utils.NormalizeUsername(username)
  if username == "" || password == "" {
    return nil, ErrInvalidCredentials
  }
  user, err := as.store.GetUserByUsername(ctx, username)
  if err != nil {
    return nil, fmt.Errorf("failed loading user: %w", err)
  }
  if user == nil {
    as.log.Warn("Login for unknown username")
    return nil, ErrInvalidCredentials
  }
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    as.log.Warn("Invalid password, user password and hash dont match", "userID", user.ID)
    return nil, ErrInvalidCredentials
  }
  return user, nil
}

func (as *authService) Logout(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.SessionID == "" {
    as.log.Warn("No session in Request Data, cannot log out")
    return ErrUnauthenticated
  }
  if err := as.sessions.Delete(ctx, rd.SessionID); err != nil {
    return fmt.Errorf("failed deleting session: %w", err)
  }
  as.log.Info("User logged out", "userID", rd.UserID)
  return nil
}

func (as *authService) CurrentUser(ctx context.Context) (*types.User, error) {
  userID := requestdata.CurrentUserID(ctx)
  if userID == 0 {
    return nil, ErrUnauthenticated
  }
  user, err := as.store.GetUser(ctx, userID)
  if err != nil {
    return nil, fmt.Errorf("failed loading current user: %w", err)
  }
  if user == nil {
    return nil, ErrUnauthenticated
  }
  return user, nil
}

func (as *authService) openSession(ctx context.Context, user *types.User) (string, error) {
  session, err := as.sessions.Create(ctx, user.ID)
  if err != nil {
    as.log.Warn("Failed to create session", "error", err)
    return "", fmt.Errorf("failed creating session: %w", err)
  }
  token, err := as.generateToken(session)
  if err != nil {
    _ = as.sessions.Delete(ctx, session.ID)
    return "", fmt.Errorf("failed signing session token: %w", err)
  }
  return token, nil
}

func (as *authService) generateToken(session *types.Session) (string, error) {
  claims := jwt.RegisteredClaims{
    ID:         session.ID,
    Subject:    strconv.Itoa(session.UserID),
    ExpiresAt:  jwt.NewNumericDate(session.ExpiresAt),
    IssuedAt:   jwt.NewNumericDate(time.Now()),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString(as.jwtSecretKey)
}

// SetContextFromToken accepts a token only while its session is still in the store.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, ErrUnauthenticated
  }
  claims := &jwt.RegisteredClaims{}
  parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
    return as.jwtSecretKey, nil
  }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
  if err != nil || !parsedToken.Valid {
    return ctx, fmt.Errorf("invalid or expired session token: %w", ErrUnauthenticated)
  }
  userID, err := strconv.Atoi(claims.Subject)
  if err != nil || userID <= 0 {
    return ctx, fmt.Errorf("invalid user id in token: %w", ErrUnauthenticated)
  }
  session, err := as.sessions.Get(ctx, claims.ID)
  if err != nil {
    return ctx, fmt.Errorf("failed loading session: %w", err)
  }
  if session == nil || session.UserID != userID {
    return ctx, fmt.Errorf("session revoked or expired: %w", ErrUnauthenticated)
  }
  rd := &requestdata.RequestData{
    TokenString:  tokenString,
    SessionID:    session.ID,
    UserID:       userID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetSessionTTL() time.Duration {
  return as.sessionTTL
}

// IsUnauthenticated reports whether err should map to 401.
func IsUnauthenticated(err error) bool {
  return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrInvalidCredentials)
}
