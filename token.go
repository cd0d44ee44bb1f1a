package tide

import (
	"context"
	"encoding"
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// EncodeToken returns the opaque token of the record of T with the given
// key. Tokens are URL-safe and bound to the table of T.
func EncodeToken[T Model](id any) string {
	var zero T
	return base64.RawURLEncoding.EncodeToString([]byte(zero.TableName() + ":" + fmt.Sprint(id)))
}

// DecodeToken returns the key a token of T encodes. Tokens of other models
// are rejected with ErrInvalidToken.
func DecodeToken[T Model](token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", NewValidationError("token", ErrInvalidToken)
	}
	var zero T
	id, ok := strings.CutPrefix(string(raw), zero.TableName()+":")
	if !ok || id == "" {
		return "", NewValidationError("token", ErrInvalidToken)
	}
	return id, nil
}

// FindByToken returns the record a token of T refers to.
func FindByToken[T Model](ctx context.Context, db Executor, token string) (*T, error) {
	m, err := metaOf[T]()
	if err != nil {
		return nil, err
	}
	s, err := DecodeToken[T](token)
	if err != nil {
		return nil, err
	}
	id, err := parseKey(m.pk.typ, s)
	if err != nil {
		return nil, NewValidationError("token", err)
	}
	return Find[T](ctx, db, id)
}

// parseKey converts s to a value of the key type typ.
func parseKey(typ reflect.Type, s string) (any, error) {
	v := reflect.New(typ)
	if u, ok := v.Interface().(encoding.TextUnmarshaler); ok {
		if err := u.UnmarshalText([]byte(s)); err != nil {
			return nil, err
		}
		return v.Elem().Interface(), nil
	}
	e := v.Elem()
	switch typ.Kind() {
	case reflect.String:
		e.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, typ.Bits())
		if err != nil {
			return nil, err
		}
		e.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, typ.Bits())
		if err != nil {
			return nil, err
		}
		e.SetUint(n)
	default:
		return nil, fmt.Errorf("unsupported key type %s", typ)
	}
	return e.Interface(), nil
}
