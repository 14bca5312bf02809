package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/realestate-assistant/infra/cloudrun"
	"github.com/GregMSThompson/realestate-assistant/infra/docker"
	"github.com/GregMSThompson/realestate-assistant/infra/firestore"
	"github.com/GregMSThompson/realestate-assistant/infra/provider"
	"github.com/GregMSThompson/realestate-assistant/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// firestore backs the optional per-session generation history
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		vertexSvc, err := vertex.SetupVertex(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, repo, vertexSvc)
		if err != nil {
			return err
		}

		return nil
	})
}
