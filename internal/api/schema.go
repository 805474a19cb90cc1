package api

// AssessmentSchema describes the body of /api/v1/simulate and
// /api/v1/assessment/sample.
const AssessmentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Assessment",
  "type": "object",
  "required": ["state", "metrics"],
  "properties": {
    "id": {"type": "string"},
    "state": {"type": "string", "enum": ["awaiting_upload", "complete"]},
    "scanned_at": {"type": "string", "format": "date-time"},
    "upload": {
      "type": "object",
      "required": ["field", "filename", "extension", "size"],
      "properties": {
        "field": {"type": "string"},
        "filename": {"type": "string"},
        "extension": {"type": "string", "enum": ["csv", "xlsx"]},
        "content_type": {"type": "string"},
        "size": {"type": "integer", "minimum": 0}
      }
    },
    "metrics": {
      "type": "array",
      "minItems": 3,
      "maxItems": 3,
      "items": {
        "type": "object",
        "required": ["label", "value"],
        "properties": {
          "label": {"type": "string"},
          "value": {"type": "string"},
          "delta": {"type": "string"},
          "delta_color": {"type": "string", "enum": ["normal", "inverse", "off"]}
        }
      }
    },
    "rows": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["risk_category", "risk_score", "status"],
        "properties": {
          "risk_category": {"type": "string"},
          "risk_score": {"type": "integer", "minimum": 0, "maximum": 100},
          "status": {"type": "string", "enum": ["Critical", "Stable", "Safe"]}
        }
      }
    }
  },
  "if": {"properties": {"state": {"const": "complete"}}},
  "then": {"required": ["rows"], "properties": {"rows": {"minItems": 5, "maxItems": 5}}},
  "else": {"not": {"required": ["rows"]}}
}`
