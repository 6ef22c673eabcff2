package trivia

// defaultBank is the built-in question set. Easy, casual questions on
// purpose; this is a party feature, not a quiz show.
var defaultBank = []Question{
	{Text: "What is the largest ocean on Earth?", Choices: [4]string{"Atlantic", "Indian", "Pacific", "Arctic"}, Answer: "C"},
	{Text: "A cat purring usually means it is?", Choices: [4]string{"Angry", "Nervous", "Relaxed", "Scared of thunder"}, Answer: "C"},
	{Text: "How many months of the year have 31 days?", Choices: [4]string{"6", "7", "8", "9"}, Answer: "B"},
	{Text: "Which of these is not a fruit, as commonly classified in the kitchen?", Choices: [4]string{"Tomato", "Apple", "Banana", "Grape"}, Answer: "A"},
	{Text: "What is the school in Harry Potter called?", Choices: [4]string{"Hogwarts", "Forest Academy", "Azkaban", "Durmstrang"}, Answer: "A"},
	{Text: "Which planet is closest to the Sun?", Choices: [4]string{"Mercury", "Venus", "Earth", "Mars"}, Answer: "A"},
	{Text: "Which of these is a mammal?", Choices: [4]string{"Shark", "Dolphin", "Octopus", "Starfish"}, Answer: "B"},
	{Text: "One meter equals how many centimeters?", Choices: [4]string{"10", "100", "1000", "10000"}, Answer: "B"},
	{Text: "Pizza is most commonly cut into which shape?", Choices: [4]string{"Squares", "Triangles", "Circles", "Stars"}, Answer: "B"},
	{Text: "In rock-paper-scissors, scissors beats what?", Choices: [4]string{"Rock", "Paper", "Scissors", "Everything"}, Answer: "B"},
	{Text: "The OK hand sign usually means?", Choices: [4]string{"No way", "All good", "Run", "Be quiet"}, Answer: "B"},
	{Text: "Which color is not one of the seven rainbow colors?", Choices: [4]string{"Red", "Orange", "Pink", "Violet"}, Answer: "C"},
	{Text: "How many hours are in a day?", Choices: [4]string{"12", "18", "24", "36"}, Answer: "C"},
	{Text: "What do pandas mostly eat?", Choices: [4]string{"Bamboo", "Fish", "Meat", "Berries"}, Answer: "A"},
	{Text: "Which language has the most native speakers?", Choices: [4]string{"English", "Spanish", "Chinese", "French"}, Answer: "C"},
	{Text: "Which greeting matches the morning?", Choices: [4]string{"Good night", "Good morning", "Good bye", "Good luck"}, Answer: "B"},
	{Text: "Which of these is a planet, not a star?", Choices: [4]string{"The Sun", "Polaris", "Mars", "Sirius"}, Answer: "C"},
	{Text: "Which of these is a social platform?", Choices: [4]string{"Discord", "Photoshop", "Excel", "Notepad"}, Answer: "A"},
	{Text: "Ketchup is mainly made from?", Choices: [4]string{"Apples", "Tomatoes", "Carrots", "Chili peppers"}, Answer: "B"},
	{Text: "Which of these animals hibernates?", Choices: [4]string{"Bears (some species)", "Giraffes", "Seahorses", "Pigeons"}, Answer: "A"},
	{Text: "The most famous pyramids are found in?", Choices: [4]string{"Greece", "Egypt", "Japan", "Brazil"}, Answer: "B"},
	{Text: "Which of these is a musical instrument?", Choices: [4]string{"Violin", "Telescope", "Compass", "Vacuum cleaner"}, Answer: "A"},
	{Text: "At a traffic light, green means?", Choices: [4]string{"Stop", "Slow down", "Go", "Reverse"}, Answer: "C"},
	{Text: "A traffic roundabout is usually which shape?", Choices: [4]string{"Square", "Triangular", "Circular", "Hexagonal"}, Answer: "C"},
}
