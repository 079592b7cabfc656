package elasticsearch

// used as body to create index requests. Email like fields keep a
// lower-cased keyword for wildcard filters.
var recordIndexSettings = `{
	"mappings": {
		"properties": {
			"id":              {"type": "long"},
			"number":          {"type": "long"},
			"mailbox_id":      {"type": "long"},
			"customer_id":     {"type": "long"},
			"assignee_id":     {"type": "long"},
			"status":          {"type": "integer"},
			"state":           {"type": "integer"},
			"type":            {"type": "integer"},
			"threads_count":   {"type": "integer"},
			"has_attachments": {"type": "boolean"},
			"created_at":      {"type": "date"},
			"updated_at":      {"type": "date"},
			"subject": {
				"type": "text",
				"analyzer": "record_analyzer"
			},
			"preview": {
				"type": "text",
				"analyzer": "record_analyzer"
			},
			"body_text": {
				"type": "text",
				"analyzer": "record_analyzer"
			},
			"customer_name": {
				"type": "text",
				"analyzer": "record_analyzer"
			},
			"customer_email": {
				"type": "text",
				"fields": {
					"keyword": {"type": "keyword", "normalizer": "lowercase_normalizer", "ignore_above": 512}
				}
			},
			"thread_from": {
				"type": "text",
				"fields": {
					"keyword": {"type": "keyword", "normalizer": "lowercase_normalizer", "ignore_above": 2048}
				}
			},
			"thread_to": {
				"type": "text",
				"fields": {
					"keyword": {"type": "keyword", "normalizer": "lowercase_normalizer", "ignore_above": 2048}
				}
			},
			"thread_cc": {
				"type": "text",
				"fields": {
					"keyword": {"type": "keyword", "normalizer": "lowercase_normalizer", "ignore_above": 2048}
				}
			}
		}
	},
	"settings": {
		"index.mapping.ignore_malformed": true,
		"analysis": {
			"analyzer": {
				"record_analyzer": {
					"type": "custom",
					"tokenizer": "standard",
					"filter": ["lowercase", "asciifolding"]
				}
			},
			"normalizer": {
				"lowercase_normalizer": {
					"type": "custom",
					"filter": ["lowercase"]
				}
			}
		}
	}
}`
