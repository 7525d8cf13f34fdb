package scenario

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "options": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "depart_at": {"type": "string", "format": "date-time"},
        "tenancy_months": {"type": "integer", "minimum": 0},
        "time_value_per_hour": {"type": "number", "minimum": 0},
        "rank_by": {"type": "string", "enum": ["cash", "cash_time"]}
      }
    },
    "destinations": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["label", "location", "visits_per_week"],
        "properties": {
          "label": {"type": "string", "minLength": 1},
          "location": {"type": "string", "minLength": 1},
          "visits_per_week": {"type": "number", "minimum": 0},
          "pass_price": {"type": "number", "minimum": 0},
          "one_way": {"type": "boolean"}
        }
      }
    },
    "candidates": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["location", "rent"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string"},
          "location": {"type": "string", "minLength": 1},
          "rent": {"type": "number", "minimum": 0},
          "building_fee": {"type": "number", "minimum": 0},
          "utilities": {"type": "number", "minimum": 0},
          "phone": {"type": "number", "minimum": 0},
          "food": {"type": "number", "minimum": 0},
          "misc": {"type": "number", "minimum": 0},
          "base_living": {"type": "number", "minimum": 0},
          "one_time_total": {"type": "number", "minimum": 0},
          "one_time_notes": {"type": "string"},
          "tenancy_months": {"type": "integer"}
        }
      }
    }
  }
}`
