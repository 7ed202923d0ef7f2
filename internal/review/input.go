package review

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"tracktor/internal/tracks"
)

// Input is a correction exactly as the reviewer entered it. From and To may be
// left empty to extend the range to the first or last frame.
type Input struct {
	VisionID string `json:"vision_id" validate:"required,numeric"`
	Tag      string `json:"tag" validate:"required,numeric"`
	From     string `json:"from" validate:"omitempty,numeric"`
	To       string `json:"to" validate:"omitempty,numeric"`
}

// Request is validated reviewer input. A nil bound is open.
type Request struct {
	VisionID int
	Tag      int
	From     *int
	To       *int
}

// Correction closes open bounds with bounds and returns the engine
// correction. When both bounds are open the range is left unset so the engine
// covers every frame. A given bound lying outside bounds collapses the range
// to that single frame, which holds nothing and leaves the store unchanged.
func (r Request) Correction(bounds tracks.FrameRange) tracks.Correction {
	c := tracks.Correction{VisionID: r.VisionID, Tag: r.Tag}
	if r.From == nil && r.To == nil {
		return c
	}
	rng := bounds
	if r.From != nil {
		rng.From = *r.From
		if r.To == nil {
			rng.To = max(rng.To, rng.From)
		}
	}
	if r.To != nil {
		rng.To = *r.To
		if r.From == nil {
			rng.From = min(rng.From, rng.To)
		}
	}
	c.Range = &rng
	return c
}

// Policy controls which tags are accepted.
type Policy struct {
	Tags             []int
	EnforceKnownTags bool
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseCorrection validates in against policy.
func ParseCorrection(in Input, policy Policy) (Request, error) {
	in = Input{
		VisionID: strings.TrimSpace(in.VisionID),
		Tag:      strings.TrimSpace(in.Tag),
		From:     strings.TrimSpace(in.From),
		To:       strings.TrimSpace(in.To),
	}
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return Request{}, &ValidationError{Field: fe.Field(), Reason: reasonFor(fe.Tag()), Err: err}
		}
		return Request{}, &ValidationError{Reason: err.Error(), Err: err}
	}

	var (
		req Request
		err error
	)
	if req.VisionID, err = parseWhole("vision_id", in.VisionID); err != nil {
		return Request{}, err
	}
	if req.Tag, err = parseWhole("tag", in.Tag); err != nil {
		return Request{}, err
	}
	if in.From != "" {
		from, err := parseFrame("from", in.From)
		if err != nil {
			return Request{}, err
		}
		req.From = &from
	}
	if in.To != "" {
		to, err := parseFrame("to", in.To)
		if err != nil {
			return Request{}, err
		}
		req.To = &to
	}
	if req.From != nil && req.To != nil && *req.From > *req.To {
		return Request{}, &ValidationError{
			Field:  "from",
			Reason: fmt.Sprintf("frame %d is after to frame %d", *req.From, *req.To),
			Err:    tracks.ErrInvalidRange,
		}
	}
	if policy.EnforceKnownTags && !slices.Contains(policy.Tags, req.Tag) {
		return Request{}, &ValidationError{
			Field:  "tag",
			Reason: fmt.Sprintf("%d is not a known tag %v", req.Tag, policy.Tags),
			Err:    ErrUnknownTag,
		}
	}
	return req, nil
}

func reasonFor(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "numeric":
		return "must be a number"
	default:
		return "failed " + tag + " check"
	}
}

func parseWhole(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be a whole number", Err: err}
	}
	return n, nil
}

func parseFrame(field, value string) (int, error) {
	n, err := parseWhole(field, value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &ValidationError{Field: field, Reason: "must not be negative", Err: tracks.ErrInvalidRange}
	}
	return n, nil
}
