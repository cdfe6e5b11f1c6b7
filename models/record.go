package models

// Record is a single immunization entry. It belongs to exactly one User and
// is immutable once created: there is no update or delete operation.
type Record struct {
	// ID is the internal unique identifier of the record.
	ID int64 `json:"id"`

	// UserID is the owning user.
	UserID int64 `json:"userId"`

	// Vaccine is the vaccine name.
	Vaccine string `json:"vaccine"`

	// Date is the administration date.
	Date Date `json:"date"`

	// Dose is the optional dose number.
	Dose *int `json:"dose"`

	// Filename is the stored name of the uploaded supporting document.
	Filename string `json:"filename"`

	// Uploader is the username of the account that created the record,
	// snapshotted at write time. It is not a live reference: renames or
	// deletions of the account do not rewrite history.
	Uploader string `json:"uploader"`

	// Timestamp is the creation time.
	Timestamp DateTime `json:"timestamp"`
}

// TableName returns the name of the database table
// associated with the Record model.
func (r Record) TableName() string {
	return "records"
}
