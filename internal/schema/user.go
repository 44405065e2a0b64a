package schema

import "journal-backend/internal/domain"

// ParseNewUser validates user creation input. Only username is required;
// a missing password marks an externally authenticated account.
func ParseNewUser(raw map[string]any) (domain.NewUser, error) {
	r := newReader(raw)

	in := domain.NewUser{
		Username:       r.requiredString("username"),
		Password:       r.optionalString("password", ""),
		Email:          r.nullableString("email"),
		FirebaseID:     r.nullableString("firebaseId"),
		DisplayName:    r.nullableString("displayName"),
		PhotoURL:       r.nullableString("photoURL"),
		IsFirebaseUser: r.optionalBool("isFirebaseUser", false),
	}
	if in.Password == "" {
		in.Password = domain.PasswordExternalAuth
	}

	if err := r.err(); err != nil {
		return domain.NewUser{}, err
	}
	return in, nil
}
