package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/bozdag05/site/app/echoServer/controller/auth"
	"github.com/bozdag05/site/app/echoServer/controller/author"
	"github.com/bozdag05/site/app/echoServer/controller/book"
	"github.com/bozdag05/site/app/echoServer/controller/catalog"
	"github.com/bozdag05/site/app/echoServer/controller/genre"
	"github.com/bozdag05/site/app/echoServer/controller/instance"
	"github.com/bozdag05/site/app/echoServer/controller/loan"
	"github.com/bozdag05/site/app/echoServer/jwtx"
)

type C struct {
	Auth      *auth.Controller
	Catalog   *catalog.Controller
	Loan      *loan.Controller
	Author    *author.Controller
	Genre     *genre.Controller
	Book      *book.Controller
	Instance  *instance.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/catalog")
	pub.POST("/register", c.Auth.Register)
	pub.POST("/login", c.Auth.Login)

	pub.GET("", c.Catalog.Index)
	pub.GET("/books", c.Catalog.Books)
	pub.GET("/books/genre/:genre_id", c.Catalog.Genre)
	pub.GET("/authors", c.Catalog.Authors)
	pub.GET("/author/:author_id", c.Catalog.AuthorDetail)
	pub.GET("/book/:book_id", c.Catalog.BookDetail)

	// Auth
	priv := e.Group("/catalog")
	priv.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id + role extraction so handlers never touch raw claims
	priv.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, err := jwtx.RoleFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			ctx.Set("role", role)
			return next(ctx)
		}
	})

	// Loans
	priv.GET("/mybooks", c.Loan.MyBooks)
	priv.GET("/list", c.Loan.ListInstances)
	priv.GET("/book/:instance_id/renew", c.Loan.RenewProposal)
	priv.POST("/book/:instance_id/renew", c.Loan.Renew)

	// Author management (librarian)
	priv.POST("/author/create", c.Author.Create)
	priv.POST("/author/:author_id/update", c.Author.Update)
	priv.POST("/author/:author_id/delete", c.Author.Delete)

	// Genre management (librarian)
	priv.POST("/genre/create", c.Genre.Create)
	priv.POST("/genre/:genre_id/delete", c.Genre.Delete)

	// Book management (librarian)
	priv.POST("/book/create", c.Book.Create)
	priv.POST("/book/:book_id/update", c.Book.Update)
	priv.POST("/book/:book_id/delete", c.Book.Delete)

	// Copy management (librarian)
	priv.POST("/bookinstance/create", c.Instance.Create)
	priv.GET("/bookinstance/:id", c.Instance.Detail)
	priv.POST("/bookinstance/:id/update", c.Instance.Update)
}
