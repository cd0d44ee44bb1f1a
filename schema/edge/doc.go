// Package edge parses relation tokens into association descriptors.
//
//	name:kind:Entity[:foreign_key]
//
// Kinds are matched case-insensitively:
//
//	belongs_to, belongsto   the owner holds the key of Entity
//	has_one, hasone         Entity holds the key of the owner, at most one
//	has_many, hasmany       Entity holds the key of the owner
//
// Without an explicit foreign key, BelongsTo uses <entity>_id and HasOne
// and HasMany use <owner>_id:
//
//	author:belongs_to:User      // author -> users.id via user_id
//	posts:has_many:Post         // posts.user_id on a User owner
//	avatar:has_one:Image:owner  // images.owner
package edge
