package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kampongconnect/backend/internal/audit"
	"github.com/kampongconnect/backend/internal/models"
	"github.com/kampongconnect/backend/internal/snapshot"
	"github.com/kampongconnect/backend/internal/storage"
	"go.uber.org/zap"
)

// registration is validated before any lookup or hashing happens
type registration struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6,max=128"`
}

// UserDirectory owns every registered account and verifies credentials
type UserDirectory struct {
	mu        sync.Mutex
	accounts  []models.StoredAccount
	snapshots *collection[models.StoredAccount]
	hasher    *PasswordHasher
	validator *ValidationHelper
	audit     *audit.Logger
	logger    *zap.Logger
	now       func() time.Time
}

func NewUserDirectory(store storage.Store, key string, hasher *PasswordHasher, auditLogger *audit.Logger, logger *zap.Logger) *UserDirectory {
	vh := NewValidationHelper()
	return &UserDirectory{
		snapshots: &collection[models.StoredAccount]{
			store: store,
			key:   key,
			codec: snapshot.New[models.StoredAccount]("accounts", vh.Validator()),
			now:   time.Now,
		},
		hasher:    hasher,
		validator: vh,
		audit:     auditLogger,
		logger:    logger.Named("directory"),
		now:       time.Now,
	}
}

// Load replaces the in-memory accounts with the persisted snapshot. A missing
// snapshot loads as an empty directory; a malformed one is a PersistenceError.
func (d *UserDirectory) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	accounts, found, err := d.snapshots.load(ctx)
	if err != nil {
		d.logger.Error("failed to load accounts", zap.Error(err))
		return err
	}
	if err := checkAccounts(accounts); err != nil {
		d.logger.Error("rejected accounts snapshot", zap.Error(err))
		return err
	}

	d.accounts = accounts
	d.logger.Info("accounts loaded", zap.Int("count", len(accounts)), zap.Bool("snapshot_found", found))
	return nil
}

// Register creates an account with an empty profile for role
func (d *UserDirectory) Register(ctx context.Context, name, email, password string, role models.Role) (models.Account, error) {
	profile, err := models.NewProfile(role)
	if err != nil {
		return models.Account{}, validationErr("role must be \"elder\" or \"volunteer\"")
	}
	return d.RegisterWithProfile(ctx, name, email, password, profile)
}

// RegisterWithProfile creates an account whose role is the profile's kind.
// The email must not already be registered, compared case-insensitively.
func (d *UserDirectory) RegisterWithProfile(ctx context.Context, name, email, password string, profile models.Profile) (models.Account, error) {
	if profile == nil || !profile.Role().Valid() {
		return models.Account{}, validationErr("profile is required")
	}

	input := registration{
		Name:     strings.TrimSpace(name),
		Email:    normalizeEmail(email),
		Password: password,
	}
	if err := d.validator.validate(&input); err != nil {
		return models.Account{}, err
	}
	if err := d.validator.validate(profile); err != nil {
		return models.Account{}, err
	}

	// argon2 is deliberately slow; hash outside the lock
	hash, err := d.hasher.Hash(input.Password)
	if err != nil {
		d.logger.Error("password hashing failed", zap.String("email", input.Email), zap.Error(err))
		return models.Account{}, newError(KindValidation, "password could not be hashed", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.findByEmail(input.Email); ok {
		d.logger.Info("registration rejected, email exists", zap.String("email", input.Email))
		return models.Account{}, newError(KindDuplicateEmail, "User with this email already exists", nil)
	}

	stored := models.StoredAccount{
		Account: models.Account{
			ID:         newID("user"),
			Email:      input.Email,
			Name:       input.Name,
			Role:       profile.Role(),
			Profile:    profile,
			CreatedAt:  stamp(d.now()),
			IsVerified: false,
		},
		PasswordHash: hash,
	}

	if err := d.commit(ctx, append(cloneSlice(d.accounts), stored)); err != nil {
		return models.Account{}, err
	}

	d.audit.LogRegistration(stored.ID, string(stored.Role))
	d.logger.Info("account registered", zap.String("account_id", stored.ID), zap.String("role", string(stored.Role)))
	return stored.Public(), nil
}

// Authenticate checks a password against the account registered for email
func (d *UserDirectory) Authenticate(ctx context.Context, email, password string) (models.Account, error) {
	d.mu.Lock()
	stored, ok := d.findByEmail(normalizeEmail(email))
	d.mu.Unlock()

	if !ok {
		d.logger.Info("login failed, no such email", zap.String("email", normalizeEmail(email)))
		return models.Account{}, newError(KindNotFound, "User not found", nil)
	}

	if !d.hasher.Verify(password, stored.PasswordHash) {
		d.audit.LogLogin(stored.ID, false)
		return models.Account{}, newError(KindInvalidCredential, "Invalid password", nil)
	}

	d.audit.LogLogin(stored.ID, true)
	return stored.Public(), nil
}

// Get returns the public projection of one account
func (d *UserDirectory) Get(id string) (models.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, a := range d.accounts {
		if a.ID == id {
			return a.Public(), nil
		}
	}
	return models.Account{}, notFoundErr("account %s not found", id)
}

// List returns every account in registration order, without secrets
func (d *UserDirectory) List() []models.Account {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]models.Account, 0, len(d.accounts))
	for _, a := range d.accounts {
		out = append(out, a.Public())
	}
	return out
}

// Seed registers the fixture accounts when no accounts snapshot exists yet.
// It reports whether anything was written.
func (d *UserDirectory) Seed(ctx context.Context, fixtures []AccountFixture) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exists, err := d.snapshots.exists(ctx)
	if err != nil || exists {
		return false, err
	}

	next := make([]models.StoredAccount, 0, len(fixtures))
	for _, f := range fixtures {
		hash, err := d.hasher.Hash(f.Password)
		if err != nil {
			return false, newError(KindValidation, "fixture password could not be hashed", err)
		}
		next = append(next, models.StoredAccount{
			Account: models.Account{
				ID:         f.ID,
				Email:      normalizeEmail(f.Email),
				Name:       f.Name,
				Role:       f.Profile.Role(),
				Profile:    f.Profile,
				CreatedAt:  stamp(f.CreatedAt),
				IsVerified: f.Verified,
			},
			PasswordHash: hash,
		})
	}

	if err := d.commit(ctx, next); err != nil {
		return false, err
	}
	d.logger.Info("demo accounts seeded", zap.Int("count", len(next)))
	return true, nil
}

// commit persists next and adopts it only if the write succeeded
func (d *UserDirectory) commit(ctx context.Context, next []models.StoredAccount) error {
	if err := d.snapshots.save(ctx, next); err != nil {
		d.logger.Error("failed to persist accounts, keeping last saved state", zap.Error(err))
		d.audit.LogError("", "", err)
		return err
	}
	d.accounts = next
	return nil
}

func (d *UserDirectory) findByEmail(email string) (models.StoredAccount, bool) {
	for _, a := range d.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, true
		}
	}
	return models.StoredAccount{}, false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkAccounts enforces the directory-wide invariants a snapshot must hold
func checkAccounts(accounts []models.StoredAccount) error {
	ids := make(map[string]struct{}, len(accounts))
	emails := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		if _, dup := ids[a.ID]; dup {
			return persistenceErr("accounts snapshot has duplicate id "+a.ID, snapshot.ErrMalformed)
		}
		ids[a.ID] = struct{}{}

		email := normalizeEmail(a.Email)
		if _, dup := emails[email]; dup {
			return persistenceErr("accounts snapshot has duplicate email "+email, snapshot.ErrMalformed)
		}
		emails[email] = struct{}{}

		if a.Profile == nil || a.Profile.Role() != a.Role {
			return persistenceErr("account "+a.ID+" profile does not match its role", snapshot.ErrMalformed)
		}
	}
	return nil
}

func cloneSlice[T any](s []T) []T {
	return append(make([]T, 0, len(s)+1), s...)
}
