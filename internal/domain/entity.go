package domain

import "time"

// DefaultJournalName is given to profiles created without a journal name.
const DefaultJournalName = "My Trading Journal"

// DefaultInitialCapital seeds profiles created on the caller's behalf.
const DefaultInitialCapital = "1000"

// TraderProfile is the per-user journal configuration.
type TraderProfile struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"userId"`
	JournalName    string     `json:"journalName"`
	InitialCapital string     `json:"initialCapital"`
	Strategy1      string     `json:"strategy1"`
	Strategy2      string     `json:"strategy2"`
	Strategy3      string     `json:"strategy3"`
	IsPro          bool       `json:"isPro"`
	ProSince       *time.Time `json:"proSince"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// NewTraderProfile is the canonical input for creating a profile.
type NewTraderProfile struct {
	UserID         int64
	JournalName    string
	InitialCapital string
	Strategy1      string
	Strategy2      string
	Strategy3      string
}

// DefaultTraderProfile is the profile created for a user on their behalf.
func DefaultTraderProfile(userID int64) NewTraderProfile {
	return NewTraderProfile{
		UserID:         userID,
		JournalName:    DefaultJournalName,
		InitialCapital: DefaultInitialCapital,
	}
}

// TraderProfilePatch holds the fields an update may change.
type TraderProfilePatch struct {
	UserID         *int64
	JournalName    *string
	InitialCapital *string
	Strategy1      *string
	Strategy2      *string
	Strategy3      *string
	IsPro          *bool
	ProSince       *Null[time.Time]
}

// Apply merges the patch over p. UpdatedAt is the caller's concern.
func (patch TraderProfilePatch) Apply(p *TraderProfile) {
	if patch.UserID != nil {
		p.UserID = *patch.UserID
	}
	if patch.JournalName != nil {
		p.JournalName = *patch.JournalName
	}
	if patch.InitialCapital != nil {
		p.InitialCapital = *patch.InitialCapital
	}
	if patch.Strategy1 != nil {
		p.Strategy1 = *patch.Strategy1
	}
	if patch.Strategy2 != nil {
		p.Strategy2 = *patch.Strategy2
	}
	if patch.Strategy3 != nil {
		p.Strategy3 = *patch.Strategy3
	}
	if patch.IsPro != nil {
		p.IsPro = *patch.IsPro
	}
	if patch.ProSince != nil {
		p.ProSince = patch.ProSince.Ptr()
	}
}

// Clone returns a copy of p that shares no memory with it.
func (p TraderProfile) Clone() TraderProfile {
	p.ProSince = clonePtr(p.ProSince)
	return p
}

// ProStatus is the subscription view of a profile.
type ProStatus struct {
	IsPro    bool       `json:"isPro"`
	ProSince *time.Time `json:"proSince"`
}
