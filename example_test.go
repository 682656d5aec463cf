package mapper_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yusiwen/mapper"
)

type Post struct {
	_     struct{} `table:"posts"`
	ID    int64    `sql:",pk"`
	Title string
	Tags  []string `sql:",json"`
}

type PostMapper struct {
	mapper.Base[Post]
}

func ExampleTableOf() {
	registry := mapper.NewRegistry()
	tbl, err := mapper.TableOf[PostMapper](registry)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(mapper.InsertWithoutPrimaryKeySQL(tbl))
	fmt.Println(mapper.SelectOneSQL(tbl))
	fmt.Println(mapper.UpdateSQL(tbl))
	fmt.Println(mapper.SelectByPrimaryKeyInSQL(tbl, []int64{1, 2, 3}))

	// Output:
	// INSERT INTO posts (title, tags) VALUES (#{title}, #{tags}::JSONB)
	// SELECT id, title, tags FROM posts WHERE id = #{id}
	// UPDATE posts SET title = #{title}, tags = #{tags}::JSONB WHERE id = #{id}
	// SELECT id, title, tags FROM posts WHERE id IN (1,2,3)
}

func ExampleInsert() {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE posts (id INTEGER PRIMARY KEY, title TEXT, tags TEXT)`); err != nil {
		log.Fatal(err)
	}

	sess := mapper.NewSession(context.Background(), db, mapper.NewRegistry(mapper.ForDB(db)))
	defer sess.Close()

	post := &Post{Title: "Hello", Tags: []string{"news"}}
	if err := mapper.Insert[PostMapper](sess, post); err != nil {
		log.Fatal(err)
	}
	fmt.Println("inserted", post.ID)

	post, err = mapper.QueryByID[PostMapper](sess, post.ID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(post.Title, post.Tags)

	// Output:
	// inserted 1
	// Hello [news]
}
