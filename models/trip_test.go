package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCollaboratorDecodeBothShapes(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"collaborators": bson.A{
			"legacyUser",
			bson.M{"userId": "u2", "role": "planner"},
			bson.M{"userId": "u3"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Collaborators []Collaborator `bson:"collaborators"`
	}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []Collaborator{
		{UserID: "legacyUser", Role: RoleVisitor},
		{UserID: "u2", Role: RolePlanner},
		{UserID: "u3", Role: RoleVisitor},
	}
	if len(doc.Collaborators) != len(want) {
		t.Fatalf("got %d collaborators, want %d", len(doc.Collaborators), len(want))
	}
	for i, c := range doc.Collaborators {
		if c != want[i] {
			t.Errorf("collaborator %d = %+v, want %+v", i, c, want[i])
		}
	}
}

func TestCollaboratorLookup(t *testing.T) {
	trip := Trip{Collaborators: []Collaborator{{UserID: "u1", Role: RoleVisitor}}}

	if _, ok := trip.Collaborator("u1"); !ok {
		t.Error("expected u1 to be found")
	}
	if _, ok := trip.Collaborator("u9"); ok {
		t.Error("did not expect u9 to be found")
	}
}
