package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get returns the stored session", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo, err := NewMongoRepository(context.Background(), mt.Coll)
		require.NoError(mt, err)

		expires := time.Now().UTC().Add(time.Hour).Truncate(time.Millisecond)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "abc"},
			{Key: "user_id", Value: int64(7)},
			{Key: "created_at", Value: time.Now().UTC()},
			{Key: "expires_at", Value: expires},
		}))
		s, err := repo.Get(context.Background(), "abc")
		require.NoError(mt, err)
		require.NotNil(mt, s)
		require.Equal(mt, "abc", s.ID)
		require.True(mt, s.Authenticated())
		require.Equal(mt, int64(7), *s.UserID)
	})

	mt.Run("missing and stale sessions read as nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo, err := NewMongoRepository(context.Background(), mt.Coll)
		require.NoError(mt, err)

		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		s, err := repo.Get(context.Background(), "nope")
		require.NoError(mt, err)
		require.Nil(mt, s)

		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "old"},
			{Key: "expires_at", Value: time.Now().UTC().Add(-time.Minute)},
		}))
		s, err = repo.Get(context.Background(), "old")
		require.NoError(mt, err)
		require.Nil(mt, s)
	})

	mt.Run("save and delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo, err := NewMongoRepository(context.Background(), mt.Coll)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		require.NoError(mt, repo.Save(context.Background(), &Session{ID: "abc", ExpiresAt: time.Now().Add(time.Hour)}))

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		require.NoError(mt, repo.Delete(context.Background(), "abc"))
	})

	mt.Run("index creation failure is reported", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))
		_, err := NewMongoRepository(context.Background(), mt.Coll)
		require.Error(mt, err)
	})
}
