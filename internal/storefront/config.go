// Package storefront reads and writes the WhatsApp section of a storefront's
// JSON config files (public.default.whatsapp["graphql-endpoint"]).
package storefront

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// GraphQLPath is appended to the app URL to form the endpoint.
const GraphQLPath = "/api/v1/web/whatsappcontact/graphql"

const endpointKey = "graphql-endpoint"

// ConfigFiles are the files the configurator updates, relative to the
// project root.
var ConfigFiles = []string{"config.json", "demo-config.json"}

// BuildGraphQLEndpoint turns an app URL into the full endpoint. Blank input
// yields "".
func BuildGraphQLEndpoint(appURL string) string {
	base := strings.TrimRight(strings.TrimSpace(appURL), "/")
	if base == "" {
		return ""
	}
	return base + GraphQLPath
}

// ReadEndpoint returns the endpoint stored in the config file at path, or ""
// when the file has none.
func ReadEndpoint(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}

	var doc struct {
		Public struct {
			Default struct {
				WhatsApp map[string]any `json:"whatsapp"`
			} `json:"default"`
		} `json:"public"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		return "", errors.Wrapf(err, "invalid JSON in %s", path)
	}
	endpoint, _ := doc.Public.Default.WhatsApp[endpointKey].(string)
	return endpoint, nil
}

// UpdateConfigFile writes endpoint into the config file at path, creating the
// nested objects it needs. A missing file is not an error: it reports false.
func UpdateConfigFile(path, endpoint string) (bool, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "could not read %s", path)
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return false, errors.Wrapf(err, "invalid JSON in %s", path)
	}
	if data == nil {
		data = map[string]any{}
	}

	whatsapp := child(child(child(data, "public"), "default"), "whatsapp")
	whatsapp[endpointKey] = endpoint

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return false, errors.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return false, errors.Wrapf(err, "could not write %s", path)
	}
	return true, nil
}

// child returns parent[key] as an object, replacing anything that is not one.
func child(parent map[string]any, key string) map[string]any {
	if m, ok := parent[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	parent[key] = m
	return m
}
