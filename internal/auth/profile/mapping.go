package profile

// attributeRenames converts provider profile field names to stored
// attribute names. Any field not listed here passes through unchanged.
var attributeRenames = map[string]string{
	"id":            "identifier",
	"lastname":      "last_name",
	"firstname":     "first_name",
	"birthday":      "birth_date",
	"emailVerified": "email_verified",
	"fullname":      "full_name",
	"sex":           "gender",
	"pictureURL":    "picture_url",
}

// MapAttributes renames provider profile fields to stored attribute
// names. It is applied on every create and every update, so the newest
// provider snapshot always wins.
func MapAttributes(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		if renamed, ok := attributeRenames[key]; ok {
			key = renamed
		}
		out[key] = value
	}
	return out
}
