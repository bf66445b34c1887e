package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

const (
	collectionMovies   = "movies"
	collectionCounters = "counters"
	movieSequence      = "movies"
)

// MovieRepository stores movies with integer ids drawn from a counters document.
type MovieRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{
		col:      db.Collection(collectionMovies),
		counters: db.Collection(collectionCounters),
	}
}

type mongoMovie struct {
	ID          int     `bson:"_id"`
	Name        string  `bson:"name"`
	Price       int     `bson:"price"`
	Description string  `bson:"description"`
	ImageURL    string  `bson:"image_url,omitempty"`
	Location    string  `bson:"location"`
	Published   bool    `bson:"published"`
	GenreID     int     `bson:"genre_id"`
	Rating      float64 `bson:"rating"`
	CreatedAt   int64   `bson:"created_at"`
}

func toMongoMovie(m *domain.Movie) mongoMovie {
	return mongoMovie{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Location:    string(m.Location),
		Published:   m.Published,
		GenreID:     m.GenreID,
		Rating:      m.Rating,
		CreatedAt:   m.CreatedAt.UnixMilli(),
	}
}

func (mm mongoMovie) toDomain() *domain.Movie {
	return &domain.Movie{
		ID:          mm.ID,
		Name:        mm.Name,
		Price:       mm.Price,
		Description: mm.Description,
		ImageURL:    mm.ImageURL,
		Location:    domain.Location(mm.Location),
		Published:   mm.Published,
		GenreID:     mm.GenreID,
		Rating:      mm.Rating,
		CreatedAt:   unixMilliToTime(mm.CreatedAt),
	}
}

func (r *MovieRepository) nextID(ctx context.Context) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": movieSequence},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next movie id: %w", err)
	}
	return counter.Seq, nil
}

func (r *MovieRepository) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}
	doc := toMongoMovie(movie)
	doc.ID = id

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMovieExists
		}
		return nil, fmt.Errorf("insert movie: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id int) (*domain.Movie, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MovieRepository) FindByName(ctx context.Context, name string) (*domain.Movie, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

// List builds a filter document from f and returns one page sorted by created_at.
func (r *MovieRepository) List(ctx context.Context, f domain.MovieFilter) (*domain.MoviePage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := movieFilterDoc(f)
	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	order := -1
	if f.SortAsc {
		order = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: order}, {Key: "_id", Value: order}}).
		SetSkip(int64((f.Page - 1) * f.PageSize)).
		SetLimit(int64(f.PageSize))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoMovie
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}

	movies := make([]*domain.Movie, 0, len(docs))
	for _, d := range docs {
		movies = append(movies, d.toDomain())
	}
	return &domain.MoviePage{
		Movies:    movies,
		Count:     int(count),
		Page:      f.Page,
		PageSize:  f.PageSize,
		PageCount: domain.PageCountFor(int(count), f.PageSize),
	}, nil
}

func movieFilterDoc(f domain.MovieFilter) bson.M {
	filter := bson.M{}
	price := bson.M{}
	if f.MinPrice > 0 {
		price["$gte"] = f.MinPrice
	}
	if f.MaxPrice > 0 {
		price["$lte"] = f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	if len(f.Locations) > 0 {
		locs := make([]string, len(f.Locations))
		for i, l := range f.Locations {
			locs[i] = string(l)
		}
		filter["location"] = bson.M{"$in": locs}
	}
	if f.Published != nil {
		filter["published"] = *f.Published
	}
	if f.GenreID > 0 {
		filter["genre_id"] = f.GenreID
	}
	return filter
}

func (r *MovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": movie.ID}, toMongoMovie(movie))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrMovieExists
		}
		return fmt.Errorf("replace movie: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "location", Value: 1}, {Key: "price", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *MovieRepository) findOne(ctx context.Context, filter bson.M) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMovie
	if err := r.col.FindOne(ctx, filter).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	return mm.toDomain(), nil
}
