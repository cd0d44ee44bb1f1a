// Package field parses the compact field grammar used by the tide
// generators into column descriptors.
//
// A field token is a colon-separated group:
//
//	name:type[:modifier]*
//
// For example:
//
//	email:string:unique:indexed
//	age:i32:nullable
//	status:string:default=active
//
// # Types
//
// Types are matched case-insensitively and accept the common SQL and Rust
// spellings:
//
//	string, varchar          text
//	int8, i8, tinyint        int16, i16, smallint
//	int32, i32, int, integer int64, i64, bigint
//	float32, f32, float      float64, f64, double
//	bool, boolean            datetime, timestamp
//	date  time  uuid  json  jsonb  decimal
//	bytes, blob, binary
//
// Any other type token is kept verbatim as TypeOther, so extension types
// pass through the generators untouched.
//
// # Modifiers
//
//	nullable, null          the column accepts NULL
//	unique, uniq            the column is unique
//	indexed, index, idx     the column is indexed
//	default=<value>         literal default value
//
// # Lists
//
// ParseList parses a comma-separated list. A malformed token is dropped and
// returned as a warning instead of failing the whole list.
package field
