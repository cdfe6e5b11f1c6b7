package models

// User is the profile entity of the registry: the person immunization
// records belong to. It is distinct from Account, which is the
// authentication identity. A User owns at most one Account and any number
// of Records. Users are created at registration and never deleted.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Name is the display name of the person.
	Name string `json:"name"`

	// DOB is the person's date of birth.
	DOB Date `json:"dob"`

	// Identifier is an optional external identifier string
	// (e.g. an insurance or patient number).
	Identifier string `json:"identifier"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
