/*
Package orm provides an easy to use db wrapper

Models are protobuf messages that can validate themselves. A ModelBucket
stores models of a single type under its own key prefix and exposes them
through the query router.

	bucket := orm.NewModelBucket("wallet", &Wallet{})
	if err := bucket.One(db, id, &wallet); err != nil {
		...
	}
*/
package orm
