package settings

// settingsSchema is compiled once by the Manager. Unknown keys are
// rejected so a typo in a hand-edited settings file surfaces as a
// validation error instead of silently falling back to a default.
const settingsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Backup server settings",
  "type": "object",
  "properties": {
    "backup_interval_minutes": {
      "type": "integer",
      "minimum": 5,
      "maximum": 1440
    },
    "max_file_size_mb": {
      "type": "integer",
      "minimum": 1,
      "maximum": 10240
    },
    "retention_days": {
      "type": "integer",
      "minimum": 1,
      "maximum": 3650
    },
    "compression": { "type": "boolean" },
    "notifications": { "type": "boolean" },
    "theme": {
      "type": "string",
      "enum": ["dark", "light", "system"]
    },
    "backend_url": {
      "type": "string",
      "pattern": "^(grpc|grpcs|http|https)://"
    },
    "api_token": { "type": "string" }
  },
  "required": [
    "backup_interval_minutes",
    "max_file_size_mb",
    "retention_days",
    "compression",
    "notifications",
    "theme",
    "backend_url"
  ],
  "additionalProperties": false
}`
