package model

type Role string

const (
	RoleWorker  Role = "worker"
	RoleCompany Role = "company"
)

const UsersKey = "registered_users"

// WorkerProfile holds the fields only worker accounts carry.
type WorkerProfile struct {
	Disability string `json:"disability,omitempty"`
	JoinDate   string `json:"joinDate,omitempty"`
}

type User struct {
	ID         string         `json:"id"`
	Username   string         `json:"username"`
	Role       Role           `json:"role"`
	Name       string         `json:"name"`
	Company    string         `json:"company,omitempty"`
	Department string         `json:"department,omitempty"`
	Position   string         `json:"position,omitempty"`
	Worker     *WorkerProfile `json:"worker,omitempty"`
}

func (u User) IsWorker() bool  { return u.Role == RoleWorker }
func (u User) IsCompany() bool { return u.Role == RoleCompany }

// Account is the persisted form of a registered user.
type Account struct {
	User         User   `json:"user"`
	PasswordHash string `json:"passwordHash"`
}
