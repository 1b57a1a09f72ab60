package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"newsdesk/internal/core"
	"newsdesk/internal/features/articles/models"
)

// Collection names
const (
	ArticlesCollection = "articles"
	usersCollection    = "users"
)

// MongoStore keeps articles in MongoDB and populates authors from the users
// collection.
type MongoStore struct {
	connector *core.Connector
	logger    *core.Logger
}

// NewMongoStore creates a mongo-backed article store
func NewMongoStore(connector *core.Connector, logger *core.Logger) *MongoStore {
	return &MongoStore{
		connector: connector,
		logger:    logger,
	}
}

type articleDocument struct {
	ID            bson.ObjectID  `bson:"_id,omitempty"`
	Title         string         `bson:"title"`
	Content       string         `bson:"content"`
	Excerpt       string         `bson:"excerpt"`
	Author        *bson.ObjectID `bson:"author,omitempty"`
	Category      string         `bson:"category"`
	PublishDate   time.Time      `bson:"publishDate"`
	LastUpdated   time.Time      `bson:"lastUpdated"`
	FeaturedImage string         `bson:"featuredImage"`
	Views         int            `bson:"views"`
	IsFeatured    bool           `bson:"isFeatured"`
	TrendingScore int            `bson:"trendingScore"`
}

type authorDocument struct {
	ID    bson.ObjectID `bson:"_id"`
	Name  string        `bson:"name"`
	Email string        `bson:"email"`
}

func (d articleDocument) toArticle() models.Article {
	article := models.Article{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Content:       d.Content,
		Excerpt:       d.Excerpt,
		Category:      d.Category,
		PublishDate:   d.PublishDate.UTC(),
		LastUpdated:   d.LastUpdated.UTC(),
		FeaturedImage: d.FeaturedImage,
		Views:         d.Views,
		IsFeatured:    d.IsFeatured,
		TrendingScore: d.TrendingScore,
	}
	if d.Author != nil {
		article.AuthorID = d.Author.Hex()
	}
	return article
}

func authorObjectID(id string) (*bson.ObjectID, error) {
	if id == "" {
		return nil, nil
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid author id %q: %w", id, err)
	}
	return &oid, nil
}

func (s *MongoStore) database(ctx context.Context) (*mongo.Database, error) {
	return s.connector.Acquire(ctx)
}

// EnsureIndexes creates the indexes used by listing
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	db, err := s.database(ctx)
	if err != nil {
		return err
	}

	_, err = db.Collection(ArticlesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "publishDate", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "publishDate", Value: -1}}},
		{Keys: bson.D{{Key: "isFeatured", Value: 1}, {Key: "publishDate", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create article indexes: %w", err)
	}
	return nil
}

func listFilter(params models.ListParams) bson.D {
	filter := bson.D{}
	if params.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: params.Category})
	}
	if params.FeaturedOnly {
		filter = append(filter, bson.E{Key: "isFeatured", Value: true})
	}

	dateRange := bson.D{}
	if params.StartDate != nil {
		dateRange = append(dateRange, bson.E{Key: "$gte", Value: *params.StartDate})
	}
	if params.EndDate != nil {
		dateRange = append(dateRange, bson.E{Key: "$lte", Value: *params.EndDate})
	}
	if len(dateRange) > 0 {
		filter = append(filter, bson.E{Key: "publishDate", Value: dateRange})
	}

	return filter
}

// List returns one page of matching articles and the total match count
func (s *MongoStore) List(ctx context.Context, params models.ListParams) ([]models.Article, int64, error) {
	db, err := s.database(ctx)
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, core.DefaultQueryTimeout)
	defer cancel()

	coll := db.Collection(ArticlesCollection)
	filter := listFilter(params)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishDate", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(params.Skip())).
		SetLimit(int64(params.Limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find articles: %w", err)
	}

	var docs []articleDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode articles: %w", err)
	}

	articles := make([]models.Article, 0, len(docs))
	for _, doc := range docs {
		articles = append(articles, doc.toArticle())
	}

	if err := s.populateAuthors(ctx, db, articles); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// populateAuthors fills in Author for every article with an author id
func (s *MongoStore) populateAuthors(ctx context.Context, db *mongo.Database, articles []models.Article) error {
	seen := make(map[bson.ObjectID]struct{})
	var ids []bson.ObjectID
	for _, article := range articles {
		if article.AuthorID == "" {
			continue
		}
		oid, err := bson.ObjectIDFromHex(article.AuthorID)
		if err != nil {
			continue
		}
		if _, ok := seen[oid]; !ok {
			seen[oid] = struct{}{}
			ids = append(ids, oid)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	cursor, err := db.Collection(usersCollection).Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}},
		options.Find().SetProjection(bson.D{{Key: "name", Value: 1}, {Key: "email", Value: 1}}),
	)
	if err != nil {
		return fmt.Errorf("find authors: %w", err)
	}

	var authors []authorDocument
	if err := cursor.All(ctx, &authors); err != nil {
		return fmt.Errorf("decode authors: %w", err)
	}

	byID := make(map[string]*models.Author, len(authors))
	for _, a := range authors {
		byID[a.ID.Hex()] = &models.Author{ID: a.ID.Hex(), Name: a.Name, Email: a.Email}
	}

	for i := range articles {
		if author, ok := byID[articles[i].AuthorID]; ok {
			articles[i].Author = author
		}
	}

	return nil
}

func (s *MongoStore) findOne(ctx context.Context, db *mongo.Database, id string) (*articleDocument, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidID, id, err)
	}

	var doc articleDocument
	err = db.Collection(ArticlesCollection).FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get article %s: %w", id, err)
	}

	return &doc, nil
}

// Get returns the article with its author populated
func (s *MongoStore) Get(ctx context.Context, id string) (*models.Article, error) {
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, core.DefaultQueryTimeout)
	defer cancel()

	doc, err := s.findOne(ctx, db, id)
	if err != nil {
		return nil, err
	}

	articles := []models.Article{doc.toArticle()}
	if err := s.populateAuthors(ctx, db, articles); err != nil {
		return nil, err
	}

	return &articles[0], nil
}

// Create stores a new article and sets its ID
func (s *MongoStore) Create(ctx context.Context, article *models.Article) error {
	db, err := s.database(ctx)
	if err != nil {
		return err
	}

	author, err := authorObjectID(article.AuthorID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, core.DefaultQueryTimeout)
	defer cancel()

	doc := articleDocument{
		ID:            bson.NewObjectID(),
		Title:         article.Title,
		Content:       article.Content,
		Excerpt:       article.Excerpt,
		Author:        author,
		Category:      article.Category,
		PublishDate:   article.PublishDate,
		LastUpdated:   article.LastUpdated,
		FeaturedImage: article.FeaturedImage,
		Views:         article.Views,
		IsFeatured:    article.IsFeatured,
		TrendingScore: article.TrendingScore,
	}

	if _, err := db.Collection(ArticlesCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}

	article.ID = doc.ID.Hex()
	return nil
}

// Update reads, applies and writes back without a transaction; concurrent
// writers race and the last one wins.
func (s *MongoStore) Update(ctx context.Context, id string, apply func(*models.Article) error) error {
	db, err := s.database(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, core.DefaultQueryTimeout)
	defer cancel()

	doc, err := s.findOne(ctx, db, id)
	if err != nil {
		return err
	}

	article := doc.toArticle()
	if err := apply(&article); err != nil {
		return err
	}

	author, err := authorObjectID(article.AuthorID)
	if err != nil {
		return err
	}

	set := bson.D{
		{Key: "title", Value: article.Title},
		{Key: "content", Value: article.Content},
		{Key: "excerpt", Value: article.Excerpt},
		{Key: "category", Value: article.Category},
		{Key: "publishDate", Value: article.PublishDate},
		{Key: "lastUpdated", Value: article.LastUpdated},
		{Key: "featuredImage", Value: article.FeaturedImage},
		{Key: "isFeatured", Value: article.IsFeatured},
	}
	update := bson.D{{Key: "$set", Value: set}}
	if author != nil {
		set = append(set, bson.E{Key: "author", Value: *author})
		update = bson.D{{Key: "$set", Value: set}}
	} else {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "author", Value: ""}}})
	}

	res, err := db.Collection(ArticlesCollection).UpdateOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, update)
	if err != nil {
		return fmt.Errorf("update article %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// Ping checks the document store connection
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.connector.Ping(ctx)
}
