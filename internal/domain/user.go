package domain

// PasswordExternalAuth is stored as the password of accounts authenticated
// by an external identity provider.
const PasswordExternalAuth = "firebase-auth"

// User is an account. FirebaseID is the stable external-identity key.
type User struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Password       string  `json:"-"`
	Email          *string `json:"email"`
	FirebaseID     *string `json:"firebaseId"`
	DisplayName    *string `json:"displayName"`
	PhotoURL       *string `json:"photoURL"`
	IsFirebaseUser bool    `json:"isFirebaseUser"`
}

// NewUser is the canonical input for creating a user.
type NewUser struct {
	Username       string
	Password       string
	Email          *string
	FirebaseID     *string
	DisplayName    *string
	PhotoURL       *string
	IsFirebaseUser bool
}

// UserPatch holds the fields an update may change. Nil fields are left untouched.
type UserPatch struct {
	Username       *string
	Password       *string
	Email          *Null[string]
	FirebaseID     *Null[string]
	DisplayName    *Null[string]
	PhotoURL       *Null[string]
	IsFirebaseUser *bool
}

// Apply merges the patch over u.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Email != nil {
		u.Email = p.Email.Ptr()
	}
	if p.FirebaseID != nil {
		u.FirebaseID = p.FirebaseID.Ptr()
	}
	if p.DisplayName != nil {
		u.DisplayName = p.DisplayName.Ptr()
	}
	if p.PhotoURL != nil {
		u.PhotoURL = p.PhotoURL.Ptr()
	}
	if p.IsFirebaseUser != nil {
		u.IsFirebaseUser = *p.IsFirebaseUser
	}
}

// Clone returns a copy of u that shares no memory with it.
func (u User) Clone() User {
	u.Email = clonePtr(u.Email)
	u.FirebaseID = clonePtr(u.FirebaseID)
	u.DisplayName = clonePtr(u.DisplayName)
	u.PhotoURL = clonePtr(u.PhotoURL)
	return u
}
