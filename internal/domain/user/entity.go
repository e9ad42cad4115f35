package user

// Account is a subscriber-auth record: restaurant staff who administer
// queues and receive booking notifications.
type Account struct {
	id           string
	email        Email
	phone        string
	passwordHash string
	role         Role
	customAdmin  bool
	adminClaim   bool
	status       AccountStatus
}

func NewAccount(id string, email Email, phone, passwordHash string, role Role) (*Account, error) {
	if id == "" {
		return nil, ErrEmptyUserID
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &Account{
		id:           id,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		role:         role,
		status:       AccountActive,
	}, nil
}

func ReconstructAccount(
	id string,
	email Email,
	phone, passwordHash string,
	role Role,
	customAdmin, adminClaim bool,
	status AccountStatus,
) *Account {
	return &Account{
		id:           id,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		role:         role,
		customAdmin:  customAdmin,
		adminClaim:   adminClaim,
		status:       status,
	}
}

// IsAdmin: custom admin flag, admin role, or an explicit admin claim.
func (a *Account) IsAdmin() bool {
	return a.customAdmin || a.role == RoleAdmin || a.adminClaim
}

func (a *Account) IsActive() bool {
	return a.status == AccountActive
}

// Notifiable accounts receive new-booking alerts.
func (a *Account) Notifiable() bool {
	return a.IsAdmin() && a.IsActive() && a.phone != ""
}

func (a *Account) ID() string            { return a.id }
func (a *Account) Email() Email          { return a.email }
func (a *Account) Phone() string         { return a.phone }
func (a *Account) PasswordHash() string  { return a.passwordHash }
func (a *Account) Role() Role            { return a.role }
func (a *Account) Status() AccountStatus { return a.status }
