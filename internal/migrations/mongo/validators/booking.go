package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_name",
			"court_id",
			"start_time",
			"end_time",
			"equipment",
			"pricing_breakdown",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"user_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"court_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"coach_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"end_time": bson.M{
				"bsonType": "date",
			},

			"equipment": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"rackets": bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
					"shoes":   bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
				},
			},

			"pricing_breakdown": bson.M{
				"bsonType": "object",
				"required": []string{"base_price", "total"},
				"properties": bson.M{
					"base_price": bson.M{"bsonType": "double", "minimum": 0},
					"total":      bson.M{"bsonType": "double", "minimum": 0},
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"confirmed",
					"cancelled",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var LeaseValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "owner", "created_at"},
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string", "minLength": 1},
			"owner":      bson.M{"bsonType": "string", "minLength": 1},
			"created_at": bson.M{"bsonType": "date"},
			"expires_at": bson.M{"bsonType": "date"},
		},
	},
}
