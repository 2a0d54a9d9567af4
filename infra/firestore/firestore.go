package firestore

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) (*firestore.Database, error) {
	svc, err := enableFireStore(ctx, prov)
	if err != nil {
		return nil, err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return nil, err
	}

	if err := createIndexes(ctx, prov, db); err != nil {
		return nil, err
	}

	return db, nil
}

func enableFireStore(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Name:       pulumi.String("(default)"),
		Project:    pulumi.String(projectID),
		LocationId: pulumi.String(region),
		Type:       pulumi.String("FIRESTORE_NATIVE"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

// createIndexes adds the composite indexes behind the per-widget note and
// event listings.
func createIndexes(ctx *pulumi.Context, prov *gcp.Provider, db *firestore.Database) error {
	indexes := []struct {
		name       string
		collection string
		orderField string
		order      string
	}{
		{"quickNotesByWidget", "quick_notes", "createdAt", "DESCENDING"},
		{"calendarEventsByWidget", "calendar_events", "start", "ASCENDING"},
	}

	for _, idx := range indexes {
		_, err := firestore.NewIndex(ctx, idx.name, &firestore.IndexArgs{
			Database:   db.Name,
			Collection: pulumi.String(idx.collection),
			QueryScope: pulumi.String("COLLECTION"),
			Fields: firestore.IndexFieldArray{
				&firestore.IndexFieldArgs{
					FieldPath: pulumi.String("widgetId"),
					Order:     pulumi.String("ASCENDING"),
				},
				&firestore.IndexFieldArgs{
					FieldPath: pulumi.String(idx.orderField),
					Order:     pulumi.String(idx.order),
				},
			},
		},
			pulumi.Provider(prov),
			pulumi.DependsOn([]pulumi.Resource{db}),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
