package remote

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	firestore "google.golang.org/api/firestore/v1"
	"google.golang.org/api/option"
)

// DatastoreScope is the OAuth scope required for Firestore access.
const DatastoreScope = "https://www.googleapis.com/auth/datastore"

// Firestore is the document store backed by the Firestore REST API.
type Firestore struct {
	svc     *firestore.Service
	project string
}

// NewFirestore builds a Firestore client for the given project using the
// provided token source.
func NewFirestore(ctx context.Context, project string, ts oauth2.TokenSource) (*Firestore, error) {
	if project == "" {
		return nil, fmt.Errorf("remote: project id required")
	}
	svc, err := firestore.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("remote: firestore client: %w", err)
	}
	return &Firestore{svc: svc, project: project}, nil
}

var _ Store = (*Firestore)(nil)

func (f *Firestore) parent(uid string) string {
	return fmt.Sprintf("projects/%s/databases/(default)/documents/users/%s", f.project, uid)
}

func (f *Firestore) name(uid, collection, id string) string {
	return fmt.Sprintf("%s/%s/%s", f.parent(uid), collection, id)
}

func (f *Firestore) ListByUser(ctx context.Context, uid, collection string) ([]Listed, error) {
	var out []Listed
	token := ""
	for {
		call := f.svc.Projects.Databases.Documents.List(f.parent(uid), collection).
			Context(ctx).PageSize(300)
		if token != "" {
			call = call.PageToken(token)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, err
		}
		for _, doc := range resp.Documents {
			out = append(out, Listed{ID: docID(doc.Name), Doc: decodeFields(doc.Fields)})
		}
		if resp.NextPageToken == "" {
			return out, nil
		}
		token = resp.NextPageToken
	}
}

func (f *Firestore) Add(ctx context.Context, uid, collection string, doc Document) (string, error) {
	created, err := f.svc.Projects.Databases.Documents.
		CreateDocument(f.parent(uid), collection, &firestore.Document{Fields: encodeFields(doc)}).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return docID(created.Name), nil
}

func (f *Firestore) Update(ctx context.Context, uid, collection, id string, doc Document) error {
	_, err := f.svc.Projects.Databases.Documents.
		Patch(f.name(uid, collection, id), &firestore.Document{Fields: encodeFields(doc)}).
		Context(ctx).Do()
	return err
}

func (f *Firestore) Delete(ctx context.Context, uid, collection, id string) error {
	_, err := f.svc.Projects.Databases.Documents.
		Delete(f.name(uid, collection, id)).
		Context(ctx).Do()
	return err
}

func docID(name string) string {
	parts := strings.Split(name, "/")
	return parts[len(parts)-1]
}

func encodeFields(doc Document) map[string]firestore.Value {
	fields := make(map[string]firestore.Value, len(doc))
	for key, v := range doc {
		switch v := v.(type) {
		case string:
			fields[key] = firestore.Value{StringValue: v, ForceSendFields: []string{"StringValue"}}
		case bool:
			fields[key] = firestore.Value{BooleanValue: v, ForceSendFields: []string{"BooleanValue"}}
		case int64:
			fields[key] = firestore.Value{IntegerValue: v, ForceSendFields: []string{"IntegerValue"}}
		case int:
			fields[key] = firestore.Value{IntegerValue: int64(v), ForceSendFields: []string{"IntegerValue"}}
		}
	}
	return fields
}

func decodeFields(fields map[string]firestore.Value) Document {
	doc := make(Document, len(fields))
	for key, v := range fields {
		switch {
		case v.StringValue != "":
			doc[key] = v.StringValue
		case v.IntegerValue != 0:
			doc[key] = v.IntegerValue
		default:
			doc[key] = v.BooleanValue
		}
	}
	return doc
}
