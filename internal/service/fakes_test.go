package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
)

// In-memory repository fakes with the same atomic create-if-absent semantics
// the postgres implementations get from unique constraints.

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*domain.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*domain.Company)}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[company.Slug]; ok {
		return domain.ErrCompanyExists
	}
	for _, existing := range r.companies {
		if existing.ManagerCode == company.ManagerCode ||
			existing.EmployeeCode == company.EmployeeCode ||
			existing.ManagerCode == company.EmployeeCode ||
			existing.EmployeeCode == company.ManagerCode {
			return domain.ErrCodeTaken
		}
	}

	saved := *company
	r.companies[company.Slug] = &saved
	return nil
}

func (r *fakeCompanyRepo) GetBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	company, ok := r.companies[slug]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	copied := *company
	return &copied, nil
}

func (r *fakeCompanyRepo) GetByRoleCode(ctx context.Context, role domain.Role, code string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, company := range r.companies {
		if company.AccessCodeForRole(role) == code {
			copied := *company
			return &copied, nil
		}
	}
	return nil, domain.ErrInvalidCode
}

func (r *fakeCompanyRepo) Delete(ctx context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[slug]; !ok {
		return domain.ErrCompanyNotFound
	}
	delete(r.companies, slug)
	return nil
}

func (r *fakeCompanyRepo) List(ctx context.Context, limit, offset int) ([]*domain.Company, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slugs := make([]string, 0, len(r.companies))
	for slug := range r.companies {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	total := len(slugs)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	out := make([]*domain.Company, 0, end-offset)
	for _, slug := range slugs[offset:end] {
		copied := *r.companies[slug]
		out = append(out, &copied)
	}
	return out, total, nil
}

type profileKey struct {
	companySlug  string
	credentialID uuid.UUID
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[profileKey]*domain.Profile
	// failTouch makes TouchLastLogin fail, to exercise the best-effort path.
	failTouch bool
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[profileKey]*domain.Profile)}
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := profileKey{profile.CompanySlug, profile.CredentialID}
	if _, ok := r.profiles[key]; ok {
		return domain.ErrAlreadyMember
	}

	saved := *profile
	r.profiles[key] = &saved
	return nil
}

func (r *fakeProfileRepo) GetByKey(ctx context.Context, companySlug string, credentialID uuid.UUID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[profileKey{companySlug, credentialID}]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) FindByCredential(ctx context.Context, credentialID uuid.UUID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []*domain.Profile
	for _, profile := range r.profiles {
		if profile.CredentialID == credentialID {
			matches = append(matches, profile)
		}
	}
	if len(matches) == 0 {
		return nil, domain.ErrProfileNotFound
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.Before(matches[j].CreatedAt)
		}
		return matches[i].CompanySlug < matches[j].CompanySlug
	})

	copied := *matches[0]
	return &copied, nil
}

func (r *fakeProfileRepo) TouchLastLogin(ctx context.Context, companySlug string, credentialID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failTouch {
		return context.DeadlineExceeded
	}

	profile, ok := r.profiles[profileKey{companySlug, credentialID}]
	if !ok {
		return domain.ErrProfileNotFound
	}
	profile.LastLoginAt = &at
	return nil
}

func (r *fakeProfileRepo) ListByCompany(ctx context.Context, companySlug string, limit, offset int) ([]*domain.Profile, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var members []*domain.Profile
	for _, profile := range r.profiles {
		if profile.CompanySlug == companySlug {
			copied := *profile
			members = append(members, &copied)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].CreatedAt.Before(members[j].CreatedAt)
	})

	total := len(members)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return members[offset:end], total, nil
}

func (r *fakeProfileRepo) Delete(ctx context.Context, companySlug string, credentialID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := profileKey{companySlug, credentialID}
	if _, ok := r.profiles[key]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.profiles, key)
	return nil
}

func (r *fakeProfileRepo) DeleteByCompany(ctx context.Context, companySlug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.profiles {
		if key.companySlug == companySlug {
			delete(r.profiles, key)
		}
	}
	return nil
}

type fakeJoinRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*domain.JoinRequest
	// beforeClose, when set, runs once at the top of the next Close call.
	// Lets tests interleave a competing status transition.
	beforeClose func()
}

func newFakeJoinRequestRepo() *fakeJoinRequestRepo {
	return &fakeJoinRequestRepo{requests: make(map[uuid.UUID]*domain.JoinRequest)}
}

func (r *fakeJoinRequestRepo) Create(ctx context.Context, request *domain.JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *request
	r.requests[request.ID] = &saved
	return nil
}

func (r *fakeJoinRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeJoinRequestRepo) ListPendingByApprover(ctx context.Context, approverEmail string) ([]*domain.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.JoinRequest
	for _, request := range r.requests {
		if request.Status == domain.JoinRequestPending && request.ApproverEmail == approverEmail {
			copied := *request
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeJoinRequestRepo) Close(ctx context.Context, id uuid.UUID, to domain.JoinRequestStatus) error {
	if hook := r.beforeClose; hook != nil {
		r.beforeClose = nil
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	if request.Status != domain.JoinRequestPending {
		return domain.ErrRequestClosed
	}
	request.Status = to
	request.UpdatedAt = time.Now()
	return nil
}

type fakeCredentialRepo struct {
	mu          sync.Mutex
	byID        map[uuid.UUID]*domain.Credential
	byEmail     map[string]uuid.UUID
	resetTokens map[uuid.UUID]string
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{
		byID:        make(map[uuid.UUID]*domain.Credential),
		byEmail:     make(map[string]uuid.UUID),
		resetTokens: make(map[uuid.UUID]string),
	}
}

func (r *fakeCredentialRepo) Create(ctx context.Context, credential *domain.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[credential.Email]; ok {
		return domain.ErrEmailInUse
	}

	saved := *credential
	r.byID[credential.ID] = &saved
	r.byEmail[credential.Email] = credential.ID
	return nil
}

func (r *fakeCredentialRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	credential, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	copied := *credential
	return &copied, nil
}

func (r *fakeCredentialRepo) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	copied := *r.byID[id]
	return &copied, nil
}

func (r *fakeCredentialRepo) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrInvalidCredentials
	}
	r.resetTokens[id] = tokenHash
	return nil
}

// fakeAuthenticator stores plaintext passwords and records reset mails; it
// stands in for AuthService where tests only care about the contract.
type fakeAuthenticator struct {
	mu         sync.Mutex
	passwords  map[string]string
	ids        map[string]uuid.UUID
	resetsSent []string
	resetErr   error
}

func newFakeAuthenticator() *fakeAuthenticator {
	return &fakeAuthenticator{
		passwords: make(map[string]string),
		ids:       make(map[string]uuid.UUID),
	}
}

func (a *fakeAuthenticator) CreateCredential(ctx context.Context, email, password string) (uuid.UUID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.ids[email]; ok {
		return uuid.Nil, domain.ErrEmailInUse
	}

	id := uuid.New()
	a.ids[email] = id
	a.passwords[email] = password
	return id, nil
}

func (a *fakeAuthenticator) Authenticate(ctx context.Context, email, password string) (uuid.UUID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, ok := a.ids[email]
	if !ok || a.passwords[email] != password {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	return id, nil
}

func (a *fakeAuthenticator) SendPasswordReset(ctx context.Context, email string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.resetErr != nil {
		return a.resetErr
	}
	a.resetsSent = append(a.resetsSent, email)
	return nil
}
