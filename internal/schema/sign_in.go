package schema

// SignIn is the body of an identity bootstrap or device registration.
// Every field is optional here; which ones are needed depends on whether
// ID tokens are being verified.
type SignIn struct {
	IDToken     string
	FirebaseID  string
	Email       string
	DisplayName string
	PhotoURL    string
}

// ParseSignIn reads the sign-in fields, treating null as absent.
func ParseSignIn(raw map[string]any) (SignIn, error) {
	r := newReader(raw)

	in := SignIn{
		IDToken:     deref(r.nullableString("idToken")),
		FirebaseID:  deref(r.nullableString("firebaseId")),
		Email:       deref(r.nullableString("email")),
		DisplayName: deref(r.nullableString("displayName")),
		PhotoURL:    deref(r.nullableString("photoURL")),
	}
	if err := r.err(); err != nil {
		return SignIn{}, err
	}
	return in, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
