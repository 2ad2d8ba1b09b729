package profile

// Field identifies one input of the profile form.
type Field string

const (
	FieldFirstName    Field = "firstName"
	FieldLastName     Field = "lastName"
	FieldEmail        Field = "email"
	FieldPhone        Field = "phone"
	FieldProfilePhoto Field = "profilePhoto"
	FieldBirthDay     Field = "birthDay"
	FieldOccupation   Field = "occupation"
	FieldSex          Field = "sex"
)

// Fields lists every form field in display order.
func Fields() []Field {
	return []Field{
		FieldFirstName,
		FieldLastName,
		FieldEmail,
		FieldPhone,
		FieldProfilePhoto,
		FieldBirthDay,
		FieldOccupation,
		FieldSex,
	}
}

// Label returns the human readable label for the field.
func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First name"
	case FieldLastName:
		return "Last name"
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Phone"
	case FieldProfilePhoto:
		return "Profile photo"
	case FieldBirthDay:
		return "Birth day"
	case FieldOccupation:
		return "Occupation"
	case FieldSex:
		return "Sex"
	default:
		return string(f)
	}
}

// Sex is the closed set of values accepted for FieldSex.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// DefaultSex is applied when the form is created or reset.
const DefaultSex = SexMale

// SexOptions lists the selectable values in display order.
func SexOptions() []string {
	return []string{string(SexMale), string(SexFemale)}
}

// Valid reports whether s is one of the known values.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Profile holds the current value of every form field. ProfilePhoto carries
// the base64 payload produced by the photo encoder and BirthDay the raw stored
// date value.
type Profile struct {
	FirstName    string `json:"firstName" yaml:"firstName"`
	LastName     string `json:"lastName" yaml:"lastName"`
	Email        string `json:"email" yaml:"email"`
	Phone        string `json:"phone" yaml:"phone"`
	ProfilePhoto string `json:"profilePhoto" yaml:"profilePhoto"`
	BirthDay     string `json:"birthDay" yaml:"birthDay"`
	Occupation   string `json:"occupation" yaml:"occupation"`
	Sex          string `json:"sex" yaml:"sex"`
}

// Defaults returns the initial form values: everything empty except sex.
func Defaults() Profile {
	return Profile{Sex: string(DefaultSex)}
}

// Get returns the value held for field.
func (p Profile) Get(field Field) (string, bool) {
	switch field {
	case FieldFirstName:
		return p.FirstName, true
	case FieldLastName:
		return p.LastName, true
	case FieldEmail:
		return p.Email, true
	case FieldPhone:
		return p.Phone, true
	case FieldProfilePhoto:
		return p.ProfilePhoto, true
	case FieldBirthDay:
		return p.BirthDay, true
	case FieldOccupation:
		return p.Occupation, true
	case FieldSex:
		return p.Sex, true
	default:
		return "", false
	}
}

// With returns a copy of p with field set to value. Unknown fields leave the
// copy unchanged.
func (p Profile) With(field Field, value string) Profile {
	switch field {
	case FieldFirstName:
		p.FirstName = value
	case FieldLastName:
		p.LastName = value
	case FieldEmail:
		p.Email = value
	case FieldPhone:
		p.Phone = value
	case FieldProfilePhoto:
		p.ProfilePhoto = value
	case FieldBirthDay:
		p.BirthDay = value
	case FieldOccupation:
		p.Occupation = value
	case FieldSex:
		p.Sex = value
	}
	return p
}
