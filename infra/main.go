package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/barbatoslupus21/unisync-overview/infra/cloudrun"
	"github.com/barbatoslupus21/unisync-overview/infra/docker"
	"github.com/barbatoslupus21/unisync-overview/infra/firestore"
	"github.com/barbatoslupus21/unisync-overview/infra/identity"
	"github.com/barbatoslupus21/unisync-overview/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable identity service so the api can verify firebase tokens
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// enable firestore, create the database and the widget item indexes
		db, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, ident, db, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
