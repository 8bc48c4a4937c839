// File: database/repository/resource/seed.go
package resourceRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"innoviahub/models"
)

// defaultPool is the fixed resource inventory: 15 drop-in desks, 4 meeting
// rooms, 4 VR headsets and 1 AI server.
func defaultPool() []models.Resource {
	var pool []models.Resource
	id := 1
	for i := 1; i <= 15; i++ {
		pool = append(pool, models.Resource{
			ID:             id,
			Name:           fmt.Sprintf("Desk %d", i),
			ResourceTypeID: models.ResourceTypeDesk,
			IsBookable:     true,
		})
		id++
	}
	for i := 1; i <= 4; i++ {
		pool = append(pool, models.Resource{
			ID:             id,
			Name:           fmt.Sprintf("Meeting Room %d", i),
			ResourceTypeID: models.ResourceTypeMeetingRoom,
			IsBookable:     true,
		})
		id++
	}
	for i := 1; i <= 4; i++ {
		pool = append(pool, models.Resource{
			ID:             id,
			Name:           fmt.Sprintf("VR Headset %d", i),
			ResourceTypeID: models.ResourceTypeVRHeadset,
			IsBookable:     true,
		})
		id++
	}
	pool = append(pool, models.Resource{
		ID:             id,
		Name:           "AI Server",
		ResourceTypeID: models.ResourceTypeAIServer,
		IsBookable:     true,
	})
	return pool
}

// Seed installs the fixed resource pool. Upserts keyed by id keep the call
// idempotent across restarts.
func (r *mongoResourceRepo) Seed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	for _, res := range defaultPool() {
		filter := bson.M{"id": res.ID}
		update := bson.M{"$set": res}
		if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
			return err
		}
	}
	return nil
}
