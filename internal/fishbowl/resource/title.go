package resource

const (
	CategoryMovies     = "Movies"
	CategoryMusic      = "Music"
	CategoryPeople     = "People"
	CategoryPlaces     = "Places"
	CategoryFood       = "Food"
	CategoryScience    = "Science"
	CategoryInternet   = "Internet"
	CategoryEveryday   = "Everyday"
	CategorySports     = "Sports"
	CategoryHistory    = "History"
	CategoryNostalgia  = "Nostalgia"
	CategoryTechnology = "Technology"
)

var Categories = []string{
	CategoryMovies, CategoryMusic, CategoryPeople, CategoryPlaces, CategoryFood, CategoryScience,
	CategoryInternet, CategoryEveryday, CategorySports, CategoryHistory, CategoryNostalgia, CategoryTechnology,
}

type Title struct {
	Text       string
	Categories []string
	Difficulty int
}

var Titles = []Title{
	{Text: "The Office", Categories: []string{CategoryMovies, CategoryNostalgia}, Difficulty: 1},
	{Text: "Stranger Things", Categories: []string{CategoryMovies}, Difficulty: 1},
	{Text: "Jurassic Park", Categories: []string{CategoryMovies, CategoryNostalgia}, Difficulty: 1},
	{Text: "The Lord of the Rings", Categories: []string{CategoryMovies}, Difficulty: 1},
	{Text: "Spirited Away", Categories: []string{CategoryMovies}, Difficulty: 2},
	{Text: "Binge watching until 3 AM", Categories: []string{CategoryMovies, CategoryEveryday}, Difficulty: 1},
	{Text: "The series finale everyone hated", Categories: []string{CategoryMovies}, Difficulty: 3},
	{Text: "Spoiling the ending by accident", Categories: []string{CategoryMovies, CategoryEveryday}, Difficulty: 2},
	{Text: "The Godfather", Categories: []string{CategoryMovies}, Difficulty: 2},
	{Text: "Titanic", Categories: []string{CategoryMovies, CategoryHistory}, Difficulty: 1},
	{Text: "Bohemian Rhapsody", Categories: []string{CategoryMusic}, Difficulty: 1},
	{Text: "Air guitar solo", Categories: []string{CategoryMusic, CategoryEveryday}, Difficulty: 1},
	{Text: "The Beatles", Categories: []string{CategoryMusic, CategoryNostalgia}, Difficulty: 1},
	{Text: "A song stuck in your head", Categories: []string{CategoryMusic, CategoryEveryday}, Difficulty: 2},
	{Text: "Karaoke night", Categories: []string{CategoryMusic, CategoryEveryday}, Difficulty: 1},
	{Text: "Elevator music", Categories: []string{CategoryMusic}, Difficulty: 3},
	{Text: "Beyonce", Categories: []string{CategoryMusic, CategoryPeople}, Difficulty: 1},
	{Text: "Mozart", Categories: []string{CategoryMusic, CategoryPeople, CategoryHistory}, Difficulty: 2},
	{Text: "Taylor Swift", Categories: []string{CategoryMusic, CategoryPeople}, Difficulty: 1},
	{Text: "Albert Einstein", Categories: []string{CategoryPeople, CategoryScience}, Difficulty: 1},
	{Text: "Cleopatra", Categories: []string{CategoryPeople, CategoryHistory}, Difficulty: 2},
	{Text: "Marie Curie", Categories: []string{CategoryPeople, CategoryScience}, Difficulty: 3},
	{Text: "Leonardo da Vinci", Categories: []string{CategoryPeople, CategoryHistory}, Difficulty: 2},
	{Text: "Serena Williams", Categories: []string{CategoryPeople, CategorySports}, Difficulty: 2},
	{Text: "Napoleon", Categories: []string{CategoryPeople, CategoryHistory}, Difficulty: 2},
	{Text: "Frida Kahlo", Categories: []string{CategoryPeople}, Difficulty: 3},
	{Text: "The Eiffel Tower", Categories: []string{CategoryPlaces}, Difficulty: 1},
	{Text: "Mount Everest", Categories: []string{CategoryPlaces}, Difficulty: 1},
	{Text: "The Great Wall of China", Categories: []string{CategoryPlaces, CategoryHistory}, Difficulty: 1},
	{Text: "Machu Picchu", Categories: []string{CategoryPlaces, CategoryHistory}, Difficulty: 3},
	{Text: "Times Square", Categories: []string{CategoryPlaces}, Difficulty: 2},
	{Text: "The Sahara", Categories: []string{CategoryPlaces, CategoryScience}, Difficulty: 2},
	{Text: "Venice", Categories: []string{CategoryPlaces}, Difficulty: 2},
	{Text: "The Bermuda Triangle", Categories: []string{CategoryPlaces}, Difficulty: 3},
	{Text: "Pineapple on pizza", Categories: []string{CategoryFood, CategoryInternet}, Difficulty: 1},
	{Text: "Honey never spoils", Categories: []string{CategoryFood, CategoryScience}, Difficulty: 3},
	{Text: "Brain freeze", Categories: []string{CategoryFood, CategoryEveryday}, Difficulty: 1},
	{Text: "Sushi", Categories: []string{CategoryFood}, Difficulty: 1},
	{Text: "The last slice of cake", Categories: []string{CategoryFood, CategoryEveryday}, Difficulty: 2},
	{Text: "Spaghetti", Categories: []string{CategoryFood}, Difficulty: 1},
	{Text: "Breakfast in bed", Categories: []string{CategoryFood, CategoryEveryday}, Difficulty: 2},
	{Text: "Hot sauce challenge", Categories: []string{CategoryFood, CategoryInternet}, Difficulty: 2},
	{Text: "Black hole", Categories: []string{CategoryScience}, Difficulty: 2},
	{Text: "Powerhouse of the cell", Categories: []string{CategoryScience, CategoryNostalgia}, Difficulty: 2},
	{Text: "Gravity", Categories: []string{CategoryScience}, Difficulty: 1},
	{Text: "Static shock in winter", Categories: []string{CategoryScience, CategoryEveryday}, Difficulty: 2},
	{Text: "Photosynthesis", Categories: []string{CategoryScience}, Difficulty: 3},
	{Text: "Contagious yawning", Categories: []string{CategoryScience, CategoryEveryday}, Difficulty: 3},
	{Text: "The moon landing", Categories: []string{CategoryScience, CategoryHistory}, Difficulty: 1},
	{Text: "Dinosaurs", Categories: []string{CategoryScience, CategoryHistory}, Difficulty: 1},
	{Text: "Rickrolling", Categories: []string{CategoryInternet, CategoryNostalgia}, Difficulty: 2},
	{Text: "This is fine", Categories: []string{CategoryInternet}, Difficulty: 2},
	{Text: "Cat videos", Categories: []string{CategoryInternet}, Difficulty: 1},
	{Text: "The comment section", Categories: []string{CategoryInternet}, Difficulty: 2},
	{Text: "Going viral", Categories: []string{CategoryInternet}, Difficulty: 1},
	{Text: "Autocorrect fails", Categories: []string{CategoryInternet, CategoryTechnology}, Difficulty: 2},
	{Text: "The loading bar stuck at 99 percent", Categories: []string{CategoryInternet, CategoryTechnology}, Difficulty: 3},
	{Text: "Cookie consent popups", Categories: []string{CategoryInternet, CategoryTechnology}, Difficulty: 3},
	{Text: "Finding money in old jeans", Categories: []string{CategoryEveryday}, Difficulty: 2},
	{Text: "Walking into a spider web", Categories: []string{CategoryEveryday}, Difficulty: 1},
	{Text: "The snooze button", Categories: []string{CategoryEveryday}, Difficulty: 1},
	{Text: "Stepping on a Lego", Categories: []string{CategoryEveryday, CategoryNostalgia}, Difficulty: 1},
	{Text: "The perfect parking spot", Categories: []string{CategoryEveryday}, Difficulty: 2},
	{Text: "Waving back at someone who waved at somebody else", Categories: []string{CategoryEveryday}, Difficulty: 4},
	{Text: "Monday morning", Categories: []string{CategoryEveryday}, Difficulty: 1},
	{Text: "Penalty shootout", Categories: []string{CategorySports}, Difficulty: 2},
	{Text: "The Olympics", Categories: []string{CategorySports, CategoryHistory}, Difficulty: 1},
	{Text: "Slam dunk", Categories: []string{CategorySports}, Difficulty: 1},
	{Text: "Marathon", Categories: []string{CategorySports}, Difficulty: 1},
	{Text: "Photo finish", Categories: []string{CategorySports}, Difficulty: 3},
	{Text: "Hole in one", Categories: []string{CategorySports}, Difficulty: 2},
	{Text: "The Mexican wave", Categories: []string{CategorySports, CategoryEveryday}, Difficulty: 3},
	{Text: "Tour de France", Categories: []string{CategorySports, CategoryPlaces}, Difficulty: 2},
	{Text: "The fall of the Berlin Wall", Categories: []string{CategoryHistory, CategoryPlaces}, Difficulty: 3},
	{Text: "The printing press", Categories: []string{CategoryHistory, CategoryTechnology}, Difficulty: 3},
	{Text: "Pirates", Categories: []string{CategoryHistory}, Difficulty: 1},
	{Text: "The Stone Age", Categories: []string{CategoryHistory}, Difficulty: 2},
	{Text: "Vikings", Categories: []string{CategoryHistory}, Difficulty: 1},
	{Text: "Knights of the Round Table", Categories: []string{CategoryHistory, CategoryPeople}, Difficulty: 3},
	{Text: "Tamagotchi", Categories: []string{CategoryNostalgia, CategoryTechnology}, Difficulty: 2},
	{Text: "Dial-up internet", Categories: []string{CategoryNostalgia, CategoryTechnology}, Difficulty: 3},
	{Text: "Mixtapes", Categories: []string{CategoryNostalgia, CategoryMusic}, Difficulty: 3},
	{Text: "Saturday morning cartoons", Categories: []string{CategoryNostalgia, CategoryMovies}, Difficulty: 2},
	{Text: "The blue screen of death", Categories: []string{CategoryTechnology, CategoryNostalgia}, Difficulty: 2},
	{Text: "Smartphone", Categories: []string{CategoryTechnology}, Difficulty: 1},
	{Text: "Robot vacuum", Categories: []string{CategoryTechnology, CategoryEveryday}, Difficulty: 2},
	{Text: "Forgetting your password", Categories: []string{CategoryTechnology, CategoryEveryday}, Difficulty: 1},
	{Text: "Turning it off and on again", Categories: []string{CategoryTechnology}, Difficulty: 2},
	{Text: "Self-driving car", Categories: []string{CategoryTechnology}, Difficulty: 2},
}
