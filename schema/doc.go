// Package schema builds the entity descriptor consumed by the model
// generator from raw command-line or schema-file input.
//
//	d, warnings := schema.Parse(schema.Input{
//		Name:      "User",
//		Fields:    "name:string,email:string:unique",
//		Relations: "posts:has_many:Post",
//		Timestamps: true,
//	})
//
// The subpackages hold the token grammars:
//
//   - [field]: name:type[:modifier]* column tokens
//   - [edge]: name:kind:Entity[:foreign_key] relation tokens
package schema
