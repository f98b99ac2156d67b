package validators

import "go.mongodb.org/mongo-driver/bson"

// Catalog documents also carry reservation_seq, bumped by reservations running
// in a transaction, so additional properties stay allowed.

var CourtValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "type", "base_price"},
		"additionalProperties": true,
		"properties": bson.M{
			"name":            bson.M{"bsonType": "string", "minLength": 1},
			"type":            bson.M{"bsonType": "string", "minLength": 1},
			"base_price":      bson.M{"bsonType": "double", "minimum": 0},
			"reservation_seq": bson.M{"bsonType": []string{"int", "long"}},
		},
	},
}

var CoachValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "hourly_rate"},
		"additionalProperties": true,
		"properties": bson.M{
			"name":        bson.M{"bsonType": "string", "minLength": 1},
			"hourly_rate": bson.M{"bsonType": "double", "minimum": 0},
			"unavailable_periods": bson.M{
				"bsonType": []string{"array", "null"},
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"start", "end"},
					"properties": bson.M{
						"start": bson.M{"bsonType": "date"},
						"end":   bson.M{"bsonType": "date"},
					},
				},
			},
			"reservation_seq": bson.M{"bsonType": []string{"int", "long"}},
		},
	},
}

var PricingRuleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "type", "enabled"},
		"additionalProperties": true,
		"properties": bson.M{
			"name":       bson.M{"bsonType": "string", "minLength": 1},
			"type":       bson.M{"bsonType": "string", "minLength": 1},
			"start_hour": bson.M{"bsonType": []string{"int", "long"}, "minimum": 0, "maximum": 24},
			"end_hour":   bson.M{"bsonType": []string{"int", "long"}, "minimum": 0, "maximum": 24},
			"multiplier": bson.M{"bsonType": "double", "minimum": 0},
			"surcharge":  bson.M{"bsonType": "double"},
			"category":   bson.M{"bsonType": "string"},
			"enabled":    bson.M{"bsonType": "bool"},
		},
	},
}
