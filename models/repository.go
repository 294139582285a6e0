package models

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	VisitCollection = "patients"
	UserCollection  = "users"
)

// VisitStore is the storage contract for visit records. Services receive it
// at construction so tests can substitute a double.
type VisitStore interface {
	Insert(ctx context.Context, visit *Visit) (*Visit, error)
	FindByID(ctx context.Context, id string) (*Visit, error)
	FindByIdentity(ctx context.Context, name, phone string) ([]Visit, error)
	FindByFollowUpRange(ctx context.Context, start, end time.Time) ([]Visit, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) (*Visit, error)
	UpdateManyByIdentity(ctx context.Context, name, phone string, patch map[string]interface{}) (int64, error)
	DeleteManyByIdentity(ctx context.Context, name, phone string) (int64, error)
	ListPatients(ctx context.Context) ([]PatientSummary, error)
	SumVisits(ctx context.Context, start, end time.Time) (int64, float64, error)
	DistinctPhones(ctx context.Context, start, end time.Time) ([]string, error)
}

// UserStore is the storage contract for login credentials.
type UserStore interface {
	Insert(ctx context.Context, user *User) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}

type MongoVisitStore struct {
	coll *mongo.Collection
}

// NewMongoVisitStore opens the visit collection and makes sure the compound
// unique index on (name, phone, visitDate) exists. The index is the only
// schema-level artifact this system has.
func NewMongoVisitStore(ctx context.Context, db *mongo.Database) (*MongoVisitStore, error) {
	coll := db.Collection(VisitCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: 1},
			{Key: "phone", Value: 1},
			{Key: "visitDate", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Println("Error from CreateOne while creating visit index:", err)
		return nil, err
	}
	return &MongoVisitStore{coll: coll}, nil
}

func (s *MongoVisitStore) Insert(ctx context.Context, visit *Visit) (*Visit, error) {
	if err := visit.ValidateFields(); err != nil {
		return nil, err
	}
	now := time.Now()
	if visit.VisitDate.IsZero() {
		visit.VisitDate = now
	}
	visit.CreatedAt = now
	visit.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, visit)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateVisit
		}
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		visit.ID = id
	}
	return visit, nil
}

func (s *MongoVisitStore) FindByID(ctx context.Context, id string) (*Visit, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var visit Visit
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&visit)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (s *MongoVisitStore) FindByIdentity(ctx context.Context, name, phone string) ([]Visit, error) {
	filter := bson.M{"name": name, "phone": phone}
	opts := options.Find().SetSort(bson.M{"visitDate": -1})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	visits := []Visit{}
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

func (s *MongoVisitStore) FindByFollowUpRange(ctx context.Context, start, end time.Time) ([]Visit, error) {
	filter := bson.M{"followUpDate": bson.M{"$gte": start, "$lte": end}}
	opts := options.Find().SetSort(bson.M{"visitDate": 1})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	visits := []Visit{}
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

func (s *MongoVisitStore) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) (*Visit, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	patch["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Visit
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patch}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateVisit
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoVisitStore) UpdateManyByIdentity(ctx context.Context, name, phone string, patch map[string]interface{}) (int64, error) {
	patch["updatedAt"] = time.Now()
	filter := bson.M{"name": name, "phone": phone}
	res, err := s.coll.UpdateMany(ctx, filter, bson.M{"$set": patch})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, ErrDuplicateVisit
		}
		return 0, err
	}
	if res.MatchedCount == 0 {
		return 0, ErrNothingMatched
	}
	return res.ModifiedCount, nil
}

func (s *MongoVisitStore) DeleteManyByIdentity(ctx context.Context, name, phone string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"name": name, "phone": phone})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount == 0 {
		return 0, ErrNothingMatched
	}
	return res.DeletedCount, nil
}

/*
* Sort every visit newest first
* Group by (name, phone), keeping the first document of each group as the
* latest visit and counting the group size
* Merge the count into the latest visit so each row reads like a visit
 */
func (s *MongoVisitStore) ListPatients(ctx context.Context) ([]PatientSummary, error) {
	pipeline := []bson.M{
		{"$sort": bson.M{"visitDate": -1}},
		{"$group": bson.M{
			"_id":         bson.M{"name": "$name", "phone": "$phone"},
			"latestVisit": bson.M{"$first": "$$ROOT"},
			"totalVisits": bson.M{"$sum": 1},
		}},
		{"$replaceRoot": bson.M{
			"newRoot": bson.M{
				"$mergeObjects": bson.A{"$latestVisit", bson.M{"totalVisits": "$totalVisits"}},
			},
		}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	patients := []PatientSummary{}
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (s *MongoVisitStore) SumVisits(ctx context.Context, start, end time.Time) (int64, float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"visitDate": bson.M{"$gte": start, "$lte": end}}},
		{"$group": bson.M{
			"_id":         nil,
			"totalVisits": bson.M{"$sum": 1},
			"totalFees":   bson.M{"$sum": "$amountPaid"},
		}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	results := []struct {
		TotalVisits int64   `bson:"totalVisits"`
		TotalFees   float64 `bson:"totalFees"`
	}{}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].TotalVisits, results[0].TotalFees, nil
}

func (s *MongoVisitStore) DistinctPhones(ctx context.Context, start, end time.Time) ([]string, error) {
	filter := bson.M{"visitDate": bson.M{"$gte": start, "$lte": end}}
	values, err := s.coll.Distinct(ctx, "phone", filter)
	if err != nil {
		return nil, err
	}
	phones := make([]string, 0, len(values))
	for _, v := range values {
		if phone, ok := v.(string); ok {
			phones = append(phones, phone)
		}
	}
	return phones, nil
}

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection(UserCollection)}
}

func (s *MongoUserStore) Insert(ctx context.Context, user *User) (*User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return user, nil
}

func (s *MongoUserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
