package routes

import (
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	CatalogHandler handlers.CatalogHandler
	RecipeHandler  handlers.RecipeHandler
	CartHandler    handlers.CartHandler
	UserHandler    handlers.UserHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Catalog()
	c.Recipes()
	c.Users()
	c.GuestRoute()
}

func (c *Config) Catalog() {
	tags := c.App.Group("/api/v1/tags")
	{
		tags.Get("", c.CatalogHandler.GetTags)
		tags.Get("/:id", c.CatalogHandler.GetTagDetail)
	}

	ingredients := c.App.Group("/api/v1/ingredients")
	{
		ingredients.Get("", c.CatalogHandler.GetIngredients)
		ingredients.Get("/:id", c.CatalogHandler.GetIngredientDetail)
	}
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/v1/recipes")
	{
		recipes.Get("", optional, c.RecipeHandler.GetRecipes)
		recipes.Post("", auth, c.RecipeHandler.CreateRecipe)

		// static segments before the :id wildcard
		recipes.Get("/download_shopping_cart", auth, c.CartHandler.DownloadShoppingCart)
		recipes.Get("/favorites", auth, c.RecipeHandler.GetFavoriteRecipes)

		recipes.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

		recipes.Post("/:id/favorite", auth, c.RecipeHandler.AddFavorite)
		recipes.Delete("/:id/favorite", auth, c.RecipeHandler.RemoveFavorite)
		recipes.Post("/:id/shopping_cart", auth, c.RecipeHandler.AddToShoppingCart)
		recipes.Delete("/:id/shopping_cart", auth, c.RecipeHandler.RemoveFromShoppingCart)
	}
}

func (c *Config) Users() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	users := c.App.Group("/api/v1/users")
	{
		users.Get("", optional, c.UserHandler.GetUsers)
		users.Get("/me", auth, c.UserHandler.GetMe)
		users.Put("/me/avatar", auth, c.UserHandler.SetAvatar)
		users.Delete("/me/avatar", auth, c.UserHandler.DeleteAvatar)
		users.Post("/set_password", auth, c.UserHandler.SetPassword)
		users.Get("/subscriptions", auth, c.UserHandler.GetSubscriptions)

		users.Get("/:id", optional, c.UserHandler.GetUserDetail)
		users.Post("/:id/subscribe", auth, c.UserHandler.Subscribe)
		users.Delete("/:id/subscribe", auth, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
