package telegram

import (
	"github.com/go-faster/jx"
	"github.com/pkg/errors"
)

// envelope верхний уровень любого ответа Bot API. Живёт только на время разбора одного ответа.
type envelope struct {
	ok          bool
	result      jx.Raw
	hasResult   bool
	errorCode   int
	hasCode     bool
	description *string
	parameters  *ResponseParameters
}

func decodeEnvelope(body []byte) (envelope, error) {
	var (
		env   envelope
		hasOK bool
	)

	d := jx.DecodeBytes(body)
	if d.Next() != jx.Object {
		return envelope{}, errors.Wrap(ErrInvalidResponseFormat, "body is not a JSON object")
	}

	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "ok":
			env.ok, err = d.Bool()
			hasOK = err == nil
		case "result":
			// result разбирает декодер конкретного метода.
			env.result, err = d.Raw()
			env.hasResult = err == nil
		case "error_code":
			env.errorCode, err = d.Int()
			env.hasCode = err == nil
		case "description":
			env.description, err = optional(d, (*jx.Decoder).Str)
		case "parameters":
			env.parameters, err = optional(d, decodeResponseParameters)
		default:
			return d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	})
	if err != nil {
		return envelope{}, errors.Wrapf(ErrInvalidResponseFormat, "%v", err)
	}
	// После объекта допустимы только пробельные символы.
	if d.Next() != jx.Invalid {
		return envelope{}, errors.Wrap(ErrInvalidResponseFormat, "trailing data after envelope")
	}

	switch {
	case !hasOK:
		return envelope{}, errors.Wrap(ErrInvalidResponseFormat, `missing "ok" field`)
	case env.ok && !env.hasResult:
		return envelope{}, errors.Wrap(ErrInvalidResponseFormat, `missing "result" field`)
	case !env.ok && !env.hasCode:
		return envelope{}, errors.Wrap(ErrInvalidResponseFormat, `missing "error_code" field`)
	}
	return env, nil
}

// apiError строит Error для конверта с ok=false.
func (env envelope) apiError() *Error {
	e := &Error{
		Code:       env.errorCode,
		Parameters: env.parameters,
	}
	if env.description == nil {
		e.DescriptionMissing = true
	} else {
		e.Description = *env.description
	}
	return e
}

func decodeResponseParameters(d *jx.Decoder) (ResponseParameters, error) {
	var p ResponseParameters
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "migrate_to_chat_id":
			p.MigrateToChatID, err = optional(d, (*jx.Decoder).Int64)
		case "retry_after":
			p.RetryAfter, err = optional(d, (*jx.Decoder).Int)
		default:
			return d.Skip()
		}
		return err
	})
	return p, err
}
