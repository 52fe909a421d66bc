package validators

import "go.mongodb.org/mongo-driver/bson"

var PlaceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"owner",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"owner": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"title": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 10000,
			},

			"address": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"photos": bson.M{
				"bsonType": []string{"array", "null"},
				"maxItems": 100,
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"perks": bson.M{
				"bsonType": []string{"array", "null"},
				"maxItems": 50,
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"extra_info": bson.M{
				"bsonType":  "string",
				"maxLength": 10000,
			},

			"check_in": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"check_out": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"max_guests": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
