package database

import (
	"regexp"

	"events-cms-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// searchClause construit un $or insensible à la casse sur les champs donnés
func searchClause(search string, fields ...string) bson.A {
	pattern := regexp.QuoteMeta(search)
	clauses := make(bson.A, 0, len(fields))
	for _, f := range fields {
		clauses = append(clauses, bson.M{f: bson.M{BSONRegex: pattern, BSONOptions: "i"}})
	}
	return clauses
}

// eventFilterQuery traduit un EventFilter en filtre MongoDB.
// Les événements supprimés sont toujours exclus.
func eventFilterQuery(filter models.EventFilter) bson.M {
	query := bson.M{"is_deleted": false}

	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}
	if filter.CategoryID != nil {
		query["category_id"] = *filter.CategoryID
	}
	if filter.UpcomingFrom != nil {
		query["date"] = bson.M{BSONGte: *filter.UpcomingFrom}
	}
	if filter.Search != "" {
		fields := []string{"title", "description"}
		if filter.SearchLocation {
			fields = append(fields, "location")
		}
		query[BSONOr] = searchClause(filter.Search, fields...)
	}

	return query
}

// eventSort retourne l'ordre de tri des événements
func eventSort(filter models.EventFilter) bson.D {
	if filter.SortByDate {
		return bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: -1}}
	}
	return bson.D{{Key: "created_at", Value: -1}}
}

// categoryFilterQuery traduit un CategoryFilter en filtre MongoDB
func categoryFilterQuery(filter models.CategoryFilter) bson.M {
	query := bson.M{"is_deleted": false}

	if filter.IsActive != nil {
		query["is_active"] = *filter.IsActive
	}
	if filter.Search != "" {
		query[BSONOr] = searchClause(filter.Search, "name", "description")
	}

	return query
}

// categorySort retourne l'ordre de tri des catégories
func categorySort(filter models.CategoryFilter) bson.D {
	if filter.SortByName {
		return bson.D{{Key: "name", Value: 1}}
	}
	return bson.D{{Key: "created_at", Value: -1}}
}

// skipLimit calcule le décalage d'une page. Une limite nulle désactive la pagination.
func skipLimit(page, limit int64) (skip, size int64) {
	if limit <= 0 {
		return 0, 0
	}
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit, limit
}

// findOptions applique tri et pagination à une requête Find
func findOptions(sort bson.D, page, limit int64) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	skip, size := skipLimit(page, limit)
	if size > 0 {
		opts.SetSkip(skip).SetLimit(size)
	}
	return opts
}

// eventListPipeline construit l'agrégation de liste d'événements avec leur catégorie jointe
func eventListPipeline(filter models.EventFilter) bson.A {
	pipeline := bson.A{
		bson.M{BSONMatch: eventFilterQuery(filter)},
		bson.M{BSONSort: eventSort(filter)},
	}

	skip, size := skipLimit(filter.Page, filter.Limit)
	if size > 0 {
		pipeline = append(pipeline, bson.M{BSONSkip: skip}, bson.M{BSONLimit: size})
	}

	return append(pipeline,
		bson.M{BSONLookup: bson.M{
			"from":         CategoriesCollection,
			"localField":   "category_id",
			"foreignField": "_id",
			"as":           "category",
		}},
		bson.M{BSONUnwind: bson.M{
			"path":                       "$category",
			"preserveNullAndEmptyArrays": true,
		}},
	)
}
