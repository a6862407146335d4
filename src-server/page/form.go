package page

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"evboard/src-server/model"
	"evboard/src-server/utils"

	"github.com/olebedev/when"
)

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldUser        = "user"
	FieldDate        = "date"
	FieldDeadline    = "deadline"
	FieldLocation    = "location"
	FieldImage       = "image"
)

// TextFields lists the text inputs in the order the modal shows them.
var TextFields = []string{FieldTitle, FieldDescription, FieldUser, FieldDate, FieldDeadline, FieldLocation}

type Fields struct {
	Title       string
	Description string
	User        string
	Date        string
	Deadline    string
	Location    string
	Image       string
}

// AddEventForm holds the add-event modal's input until it is submitted.
type AddEventForm struct {
	fields Fields

	parser   *when.Parser
	location *time.Location
	now      func() time.Time
}

// parser may be nil, then only YYYY-MM-DD dates get normalized.
func NewAddEventForm(parser *when.Parser, location *time.Location) *AddEventForm {
	if location == nil {
		location = time.Local
	}
	return &AddEventForm{
		parser:   parser,
		location: location,
		now:      time.Now,
	}
}

func (f *AddEventForm) Fields() Fields {
	return f.fields
}

func (f *AddEventForm) Set(name, value string) error {
	switch name {
	case FieldTitle:
		f.fields.Title = utils.CleanupString(value)
	case FieldDescription:
		f.fields.Description = utils.CleanupString(value)
	case FieldUser:
		f.fields.User = utils.CleanupString(value)
	case FieldLocation:
		f.fields.Location = utils.CleanupString(value)
	case FieldDate:
		f.fields.Date = f.normalizeDate(value)
	case FieldDeadline:
		f.fields.Deadline = f.normalizeDate(value)
	case FieldImage:
		// already encoded, carried over from a previous render
		f.fields.Image = value
	default:
		return fmt.Errorf("(*AddEventForm).Set: %w: %q", ErrUnknownField, name)
	}
	return nil
}

// Accepts YYYY-MM-DD as is, otherwise tries natural language ("next friday").
// Anything unparseable is kept verbatim.
func (f *AddEventForm) normalizeDate(value string) string {
	value = utils.CleanupString(value)
	if value == "" {
		return ""
	}
	if _, err := time.Parse(time.DateOnly, value); err == nil {
		return value
	}
	if f.parser == nil {
		return value
	}
	result, err := f.parser.Parse(value, f.now().In(f.location))
	if err != nil || result == nil {
		return value
	}
	return result.Time.In(f.location).Format(time.DateOnly)
}

// AttachImage reads the whole file into the form as a data URL. An empty
// file leaves the current image untouched.
func (f *AddEventForm) AttachImage(r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("(*AddEventForm).AttachImage: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType == "application/octet-stream" {
		mediaType, _, _ = mime.ParseMediaType(http.DetectContentType(data))
	}
	f.fields.Image = "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
	return nil
}

func (f *AddEventForm) Missing() []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{FieldTitle, f.fields.Title},
		{FieldDescription, f.fields.Description},
		{FieldDate, f.fields.Date},
		{FieldLocation, f.fields.Location},
		{FieldUser, f.fields.User},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// Submit hands the candidate to onAdd and resets the form once onAdd accepts it.
// With required fields missing the form is left as is and a *MissingFieldsError is returned.
func (f *AddEventForm) Submit(onAdd func(candidate model.Event) error) error {
	if missing := f.Missing(); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	candidate := model.Event{
		Title:       f.fields.Title,
		Description: f.fields.Description,
		Date:        f.fields.Date,
		Location:    f.fields.Location,
		User:        f.fields.User,
		Deadline:    f.fields.Deadline,
		Image:       f.fields.Image,
	}
	if err := onAdd(candidate); err != nil {
		return err
	}
	f.Reset()
	return nil
}

func (f *AddEventForm) Reset() {
	f.fields = Fields{}
}
