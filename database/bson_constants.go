package database

// Opérateurs MongoDB (évite les littéraux dupliqués)
const (
	BSONLookup  = "$lookup"
	BSONUnwind  = "$unwind"
	BSONMatch   = "$match"
	BSONSort    = "$sort"
	BSONSkip    = "$skip"
	BSONLimit   = "$limit"
	BSONRegex   = "$regex"
	BSONOptions = "$options"
	BSONOr      = "$or"
	BSONGte     = "$gte"
	BSONNe      = "$ne"
	BSONSet     = "$set"
)
