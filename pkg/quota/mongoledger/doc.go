// Package mongoledger stores usage records in MongoDB.
//
// One document per (business_id, period, period_key), enforced unique
// by index, with counters kept in a nested subdocument:
//
//	{
//	  "business_id": "b-42",
//	  "period": "month",
//	  "period_key": "2025-06",
//	  "counters": {"outlets": 2, "products": 117},
//	  "created_at": ...,
//	  "updated_at": ...
//	}
//
// The conditional increment is a findOneAndUpdate whose filter accepts
// the document only while the counter still has room; MongoDB
// evaluates filter and $inc atomically per document, which is the
// entire admission-control guarantee. The conditional path never
// upserts, so a denied reservation cannot leave a record behind.
package mongoledger
